// Package store is the shopper's cart and wishlist: the single source of
// truth every cart view reads from. State is rehydrated from storage on
// load and written back after each mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Phirakan/go-storefront/models"
	"github.com/Phirakan/go-storefront/storage"
)

// SchemaVersion is written into every persisted envelope. A blob with a
// different version is discarded on load.
const SchemaVersion = 0

// DefaultKey is the storage entry name for shopper state
const DefaultKey = "my-shop-storage"

const persistTimeout = 5 * time.Second

// EventType identifies a store notification
type EventType string

// EventCartItemAdded fires after every successful AddToCart. Views use it
// to reveal the mini cart.
const EventCartItemAdded EventType = "cart_item_added"

// Event is delivered to subscribers after a mutation commits
type Event struct {
	Type      EventType
	ProductID string
	Size      string
	Quantity  int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for best-effort persistence failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides the clock used for wishlist timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store holds one shopper's cart lines and wishlist entries.
// It is safe for concurrent use.
type Store struct {
	storage storage.Storage
	key     string
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	cart     []models.CartItem
	wishlist []models.WishlistItem

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// New creates an empty store persisting under key. Call Load to rehydrate.
func New(st storage.Storage, key string, opts ...Option) *Store {
	s := &Store{
		storage:     st,
		key:         key,
		logger:      zap.NewNop(),
		now:         time.Now,
		cart:        []models.CartItem{},
		wishlist:    []models.WishlistItem{},
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage entry name
func (s *Store) Key() string {
	return s.key
}

// Load replaces in-memory state with the persisted state. A missing,
// corrupt or foreign-version entry leaves the store empty and is not an
// error; only a failing storage backend is reported.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []models.CartItem{}
	s.wishlist = []models.WishlistItem{}

	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %q: %w", s.key, err)
	}

	state, err := decodeState(data)
	if err != nil {
		s.logger.Warn("Discarding persisted state", zap.String("key", s.key), zap.Error(err))
		return nil
	}

	s.cart = state.Cart
	s.wishlist = state.Wishlist
	return nil
}

// Save writes the current state to storage
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(models.PersistedEnvelope{
		State:   models.PersistedState{Cart: s.cart, Wishlist: s.wishlist},
		Version: SchemaVersion,
	})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save %q: %w", s.key, err)
	}
	return nil
}

// persistLocked saves after a mutation. Failures are logged, never returned.
func (s *Store) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.saveLocked(ctx); err != nil {
		s.logger.Warn("Failed to persist shopper state", zap.String("key", s.key), zap.Error(err))
	}
}

func decodeState(data []byte) (models.PersistedState, error) {
	var env models.PersistedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.PersistedState{}, err
	}
	if env.Version != SchemaVersion {
		return models.PersistedState{}, fmt.Errorf("unsupported state version %d", env.Version)
	}

	state := models.PersistedState{
		Cart:     make([]models.CartItem, 0, len(env.State.Cart)),
		Wishlist: make([]models.WishlistItem, 0, len(env.State.Wishlist)),
	}
	// Drop lines that could never have been written by AddToCart and merge
	// repeated (product, size) keys the way AddToCart would
	for _, item := range env.State.Cart {
		if item.Product.ID == "" || item.Quantity < 1 {
			continue
		}
		idx := slices.IndexFunc(state.Cart, func(line models.CartItem) bool {
			return line.Matches(item.Product.ID, item.SelectedSize)
		})
		if idx >= 0 {
			state.Cart[idx].Quantity += item.Quantity
			continue
		}
		state.Cart = append(state.Cart, item)
	}
	for _, item := range env.State.Wishlist {
		if item.Product.ID == "" || slices.ContainsFunc(state.Wishlist, func(w models.WishlistItem) bool {
			return w.Product.ID == item.Product.ID
		}) {
			continue
		}
		state.Wishlist = append(state.Wishlist, item)
	}
	return state, nil
}

// Subscribe registers fn for store events and returns a cancel func.
// fn runs on the mutating goroutine after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Snapshot returns a deep copy of the persisted part of the state
func (s *Store) Snapshot() models.PersistedState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.PersistedState{
		Cart:     cloneCart(s.cart),
		Wishlist: cloneWishlist(s.wishlist),
	}
}

func cloneCart(in []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}

func cloneWishlist(in []models.WishlistItem) []models.WishlistItem {
	out := make([]models.WishlistItem, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}
