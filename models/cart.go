package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem represents a line in the shopping cart.
// A line is identified by the product ID and the selected size.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor,omitempty"`
}

// Matches reports whether the line has the given identity key
func (i CartItem) Matches(productID, size string) bool {
	return i.Product.ID == productID && i.SelectedSize == size
}

// LineTotal is price times quantity
func (i CartItem) LineTotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// WithQuantity returns a copy of the line with a new quantity
func (i CartItem) WithQuantity(quantity int) CartItem {
	out := i
	out.Quantity = quantity
	return out
}

// Clone returns a deep copy of the line
func (i CartItem) Clone() CartItem {
	out := i
	out.Product = i.Product.Clone()
	return out
}

// WishlistItem represents a saved product
type WishlistItem struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}

// Clone returns a deep copy of the entry
func (w WishlistItem) Clone() WishlistItem {
	out := w
	out.Product = w.Product.Clone()
	return out
}

// Totals provides a summary of the cart with derived amounts
type Totals struct {
	ItemCount  int             `json:"itemCount"`
	LineCount  int             `json:"lineCount"`
	Subtotal   int64           `json:"subtotal"`
	Shipping   int64           `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`

	// FreeShippingRemaining is how much more the shopper must add to get
	// free shipping; 0 once shipping is waived.
	FreeShippingRemaining int64 `json:"freeShippingRemaining"`
}

// CartSummary is the cart view returned to the presentation layer
type CartSummary struct {
	Items  []CartItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// CartItemInput holds data for adding a line to the cart
type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// CartQuantityInput holds data for changing a line's quantity
type CartQuantityInput struct {
	Quantity int `json:"quantity"`
}

// WishlistItemInput holds data for saving a product
type WishlistItemInput struct {
	ProductID string `json:"productId" binding:"required"`
}
