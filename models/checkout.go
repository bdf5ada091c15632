package models

import "time"

// Payment methods accepted by the checkout form
const (
	PaymentCard  = "card"
	PaymentBkash = "bkash"
	PaymentNagad = "nagad"
	PaymentCOD   = "cod"
)

// DefaultCountry is preselected on the checkout form
const DefaultCountry = "Bangladesh"

// ShippingAddress is the delivery address captured at checkout
type ShippingAddress struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Address    string `json:"address" binding:"required"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
	Phone      string `json:"phone" binding:"required"`
}

// CheckoutInput is used for placing a (simulated) order
type CheckoutInput struct {
	Email           string          `json:"email" binding:"required,email"`
	EmailOffers     bool            `json:"emailOffers"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" binding:"omitempty,oneof=card bkash nagad cod"`
}

// OrderConfirmation is returned once the simulated checkout completes.
// It is not stored anywhere.
type OrderConfirmation struct {
	OrderNumber     string          `json:"orderNumber"`
	Email           string          `json:"email"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []CartItem      `json:"items"`
	Totals          Totals          `json:"totals"`
	PlacedAt        time.Time       `json:"placedAt"`
}
