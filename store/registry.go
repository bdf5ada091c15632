package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Phirakan/go-storefront/storage"
)

// Registry owns one Store per shopper session. A store unused for longer
// than the idle TTL is dropped from memory; its persisted state is
// rehydrated on the session's next request.
type Registry struct {
	storage storage.Storage
	key     string
	idleTTL time.Duration
	logger  *zap.Logger
	opts    []Option
	now     func() time.Time

	mu        sync.Mutex
	stores    map[string]*session
	lastSweep time.Time
}

type session struct {
	store    *Store
	lastUsed time.Time
}

// NewRegistry creates a registry whose stores persist under "<key>:<session>".
// idleTTL <= 0 keeps stores for the life of the process.
func NewRegistry(st storage.Storage, key string, idleTTL time.Duration, logger *zap.Logger, opts ...Option) *Registry {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		storage: st,
		key:     key,
		idleTTL: idleTTL,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
		stores:  make(map[string]*session),
	}
}

// EntryKey returns the storage entry name for a session
func (r *Registry) EntryKey(sessionID string) string {
	return r.key + ":" + sessionID
}

// Get returns the session's store, rehydrating it on first use
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.idleTTL > 0 && now.Sub(r.lastSweep) >= r.idleTTL {
		r.sweepLocked(now)
	}

	if sess, ok := r.stores[sessionID]; ok {
		sess.lastUsed = now
		return sess.store
	}

	logger := r.logger.With(zap.String("session_id", sessionID))
	opts := append([]Option{WithLogger(logger)}, r.opts...)
	s := New(r.storage, r.EntryKey(sessionID), opts...)

	if err := s.Load(ctx); err != nil {
		logger.Warn("Starting with empty shopper state", zap.Error(err))
	}

	s.Subscribe(func(e Event) {
		logger.Debug("Cart item added",
			zap.String("product_id", e.ProductID),
			zap.String("size", e.Size),
			zap.Int("quantity", e.Quantity),
		)
	})

	r.stores[sessionID] = &session{store: s, lastUsed: now}
	return s
}

// Sweep drops every store idle for longer than the idle TTL and returns
// how many were dropped
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sweepLocked(r.now())
}

func (r *Registry) sweepLocked(now time.Time) int {
	r.lastSweep = now
	if r.idleTTL <= 0 {
		return 0
	}

	evicted := 0
	for id, sess := range r.stores {
		if now.Sub(sess.lastUsed) > r.idleTTL {
			delete(r.stores, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("Evicted idle sessions", zap.Int("count", evicted), zap.Int("remaining", len(r.stores)))
	}
	return evicted
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}
