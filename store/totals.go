package store

import (
	"github.com/shopspring/decimal"

	"github.com/Phirakan/go-storefront/models"
)

// Pricing holds the shipping and tax rules applied to a cart
type Pricing struct {
	ShippingFee           int64
	FreeShippingThreshold int64 // shipping is waived once the subtotal is strictly above this
	TaxRate               decimal.Decimal
}

// ComputeTotals derives every cart amount from the lines. Nothing here is
// stored.
func ComputeTotals(items []models.CartItem, p Pricing) models.Totals {
	sub := subtotal(items)

	t := models.Totals{
		ItemCount: itemCount(items),
		LineCount: len(items),
		Subtotal:  sub,
	}

	if sub > 0 && sub <= p.FreeShippingThreshold && p.ShippingFee > 0 {
		t.Shipping = p.ShippingFee
		t.FreeShippingRemaining = p.FreeShippingThreshold - sub + 1
	}

	t.Tax = decimal.NewFromInt(sub).Mul(p.TaxRate).Round(2)
	t.GrandTotal = decimal.NewFromInt(sub + t.Shipping).Add(t.Tax)
	return t
}
