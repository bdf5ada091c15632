package models

// PersistedState is the part of the store written to durable storage.
// UI flags (drawer open, menu open) are never part of it.
type PersistedState struct {
	Cart     []CartItem     `json:"cart"`
	Wishlist []WishlistItem `json:"wishlist"`
}

// PersistedEnvelope wraps the state with a schema version
type PersistedEnvelope struct {
	State   PersistedState `json:"state"`
	Version int            `json:"version"`
}
