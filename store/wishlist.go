package store

import (
	"slices"

	"github.com/Phirakan/go-storefront/models"
)

// AddToWishlist saves product unless an entry for its ID already exists
func (s *Store) AddToWishlist(product models.Product) {
	if product.ID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wishlistIndex(product.ID) >= 0 {
		return
	}
	s.wishlist = append(slices.Clone(s.wishlist), models.WishlistItem{
		Product: product.Clone(),
		AddedAt: s.now().UTC(),
	})
	s.persistLocked()
}

// RemoveFromWishlist deletes the entry for productID if present
func (s *Store) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.wishlistIndex(productID)
	if idx < 0 {
		return
	}
	s.wishlist = slices.Delete(slices.Clone(s.wishlist), idx, idx+1)
	s.persistLocked()
}

// ClearWishlist empties the wishlist
func (s *Store) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = []models.WishlistItem{}
	s.persistLocked()
}

// IsInWishlist reports whether productID is saved
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wishlistIndex(productID) >= 0
}

// Wishlist returns a copy of the entries in the order they were added
func (s *Store) Wishlist() []models.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneWishlist(s.wishlist)
}

func (s *Store) wishlistIndex(productID string) int {
	return slices.IndexFunc(s.wishlist, func(item models.WishlistItem) bool {
		return item.Product.ID == productID
	})
}
