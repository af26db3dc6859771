// Package storefront owns the per-visitor state of the shop.
package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopzone.GO/core/cache"
	"shopzone.GO/core/i18n"
	"shopzone.GO/service/cart"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
)

const cacheTag = "storefront:sessions"

// Session is one visitor's storefront state. Handlers serialize their
// work on a session with Do.
type Session struct {
	ID       string
	Cart     *cart.Store
	Carousel *catalog.Carousel

	mu       sync.Mutex
	filter   catalog.FilterState
	lang     i18n.Language
	wizard   *checkout.Wizard
	stopSave func()
	newWiz   func(s *Session) *checkout.Wizard
}

// Do runs fn with the session lock held.
func (s *Session) Do(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// The accessors below expect the caller to be inside Do.

func (s *Session) Filter() catalog.FilterState     { return s.filter }
func (s *Session) SetFilter(f catalog.FilterState) { s.filter = f }
func (s *Session) Language() i18n.Language         { return s.lang }
func (s *Session) SetLanguage(lang i18n.Language)  { s.lang = lang }

// Checkout returns the session wizard, starting one if needed. A wizard
// that already submitted its order is replaced.
func (s *Session) Checkout() *checkout.Wizard {
	if s.wizard == nil || s.wizard.Step() == checkout.StepSubmitted {
		s.wizard = s.newWiz(s)
	}
	return s.wizard
}

// ActiveCheckout returns the wizard without starting one.
func (s *Session) ActiveCheckout() (*checkout.Wizard, bool) {
	return s.wizard, s.wizard != nil
}

// EndCheckout discards the wizard.
func (s *Session) EndCheckout() {
	s.wizard = nil
}

// Manager creates and finds sessions. Sessions live in the cache with a
// sliding TTL; carts are mirrored to the SnapshotStore when one is set.
type Manager struct {
	cache     *cache.Cache
	ttl       time.Duration
	snapshots cart.SnapshotStore
	placer    checkout.OrderPlacer
	rates     checkout.Rates
	log       *zap.Logger

	mu sync.Mutex
}

type Options struct {
	TTL       time.Duration
	Snapshots cart.SnapshotStore
	Placer    checkout.OrderPlacer
	Rates     checkout.Rates
	Log       *zap.Logger
}

func NewManager(c *cache.Cache, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Manager{
		cache:     c,
		ttl:       opts.TTL,
		snapshots: opts.Snapshots,
		placer:    opts.Placer,
		rates:     opts.Rates,
		log:       opts.Log,
	}
}

func cacheKey(id string) string { return "storefront:session:" + id }

// Get returns a live session and refreshes its TTL.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := m.cache.Get(cacheKey(id))
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	m.cache.SetTTL(cacheKey(id), s, m.ttl, []string{cacheTag})
	return s, true
}

// Open returns the session for id, creating it when id is unknown or
// malformed. A new session under a known id gets its cart back from the
// snapshot store. created reports whether a session was made.
func (m *Manager) Open(ctx context.Context, id string) (s *Session, created bool) {
	if s, ok := m.Get(id); ok {
		return s, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.Get(id); ok {
		return s, false
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s = &Session{
		ID:       id,
		Carousel: catalog.NewCarousel(),
		filter:   catalog.DefaultFilter(),
		lang:     i18n.Default,
		newWiz:   m.newWizard,
	}
	s.Cart = cart.NewStore()
	if m.snapshots != nil {
		st, err := cart.Hydrate(ctx, m.snapshots, id)
		if err != nil {
			m.log.Warn("cart snapshot not restored", zap.String("session", id), zap.Error(err))
		}
		s.Cart = st
		s.stopSave = cart.Persist(st, m.snapshots, id, m.log)
	}
	m.cache.SetTTL(cacheKey(id), s, m.ttl, []string{cacheTag})
	return s, true
}

func (m *Manager) newWizard(s *Session) *checkout.Wizard {
	return checkout.NewWizard(s.ID, s.Cart, m.placer, m.rates)
}

// Close drops a session and its saved cart.
func (m *Manager) Close(ctx context.Context, id string) error {
	v, ok := m.cache.Get(cacheKey(id))
	m.cache.Delete(cacheKey(id))
	if ok {
		if s := v.(*Session); s.stopSave != nil {
			s.stopSave()
		}
	}
	if m.snapshots != nil {
		return m.snapshots.Delete(ctx, id)
	}
	return nil
}

// Sweep evicts expired sessions from the cache.
func (m *Manager) Sweep() int {
	return m.cache.Sweep()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	return len(m.cache.GetKeysByTag(cacheTag))
}
