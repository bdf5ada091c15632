package store

import (
	"slices"

	"github.com/Phirakan/go-storefront/models"
)

// AddToCart merges quantity into the line keyed by (product.ID, size) or
// appends a new line. Stock is not checked here. A quantity below 1 is
// ignored.
func (s *Store) AddToCart(product models.Product, size, color string, quantity int) {
	if quantity < 1 || product.ID == "" {
		return
	}

	s.mu.Lock()
	idx := s.lineIndex(product.ID, size)
	next := slices.Clone(s.cart)
	if idx >= 0 {
		next[idx] = next[idx].WithQuantity(next[idx].Quantity + quantity)
	} else {
		next = append(next, models.CartItem{
			Product:       product.Clone(),
			Quantity:      quantity,
			SelectedSize:  size,
			SelectedColor: color,
		})
	}
	s.cart = next
	s.persistLocked()
	s.mu.Unlock()

	s.publish(Event{
		Type:      EventCartItemAdded,
		ProductID: product.ID,
		Size:      size,
		Quantity:  quantity,
	})
}

// RemoveFromCart deletes the matching line; missing lines are a no-op
func (s *Store) RemoveFromCart(productID, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lineIndex(productID, size)
	if idx < 0 {
		return
	}
	s.cart = slices.Delete(slices.Clone(s.cart), idx, idx+1)
	s.persistLocked()
}

// UpdateCartQuantity sets the quantity of the matching line. A quantity
// below 1 is rejected; callers remove lines explicitly.
func (s *Store) UpdateCartQuantity(productID, size string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lineIndex(productID, size)
	if idx < 0 || s.cart[idx].Quantity == quantity {
		return
	}
	next := slices.Clone(s.cart)
	next[idx] = next[idx].WithQuantity(quantity)
	s.cart = next
	s.persistLocked()
}

// ClearCart empties the cart
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []models.CartItem{}
	s.persistLocked()
}

// Cart returns a copy of the cart lines in insertion order
func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneCart(s.cart)
}

// Line returns the line keyed by (productID, size)
func (s *Store) Line(productID, size string) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.lineIndex(productID, size)
	if idx < 0 {
		return models.CartItem{}, false
	}
	return s.cart[idx].Clone(), true
}

// ItemCount is the sum of quantities across all lines
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return itemCount(s.cart)
}

// LineCount is the number of distinct lines
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cart)
}

// Subtotal is the sum of price times quantity across all lines
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return subtotal(s.cart)
}

// Totals derives the cart totals under the given pricing rules
func (s *Store) Totals(p Pricing) models.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ComputeTotals(s.cart, p)
}

// Summary returns the cart lines together with their totals
func (s *Store) Summary(p Pricing) models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.CartSummary{
		Items:  cloneCart(s.cart),
		Totals: ComputeTotals(s.cart, p),
	}
}

// Checkout captures the cart summary and clears the cart in one step.
// It reports false, leaving the store untouched, when the cart is empty.
func (s *Store) Checkout(p Pricing) (models.CartSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return models.CartSummary{}, false
	}

	summary := models.CartSummary{
		Items:  cloneCart(s.cart),
		Totals: ComputeTotals(s.cart, p),
	}
	s.cart = []models.CartItem{}
	s.persistLocked()
	return summary, true
}

func (s *Store) lineIndex(productID, size string) int {
	return slices.IndexFunc(s.cart, func(item models.CartItem) bool {
		return item.Matches(productID, size)
	})
}

func itemCount(items []models.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func subtotal(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
