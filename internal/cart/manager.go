package cart

import (
	"sync"

	"github.com/rs/zerolog"
)

// Manager keeps one cart per user session. Carts are created lazily on first
// access and live in memory only; restarting the process empties every cart,
// which mirrors the portal's session-scoped cart behaviour.
type Manager struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	submitter Submitter
	logger    zerolog.Logger
}

// NewManager creates a cart manager whose carts submit orders through the
// given submitter.
func NewManager(submitter Submitter, logger zerolog.Logger) *Manager {
	return &Manager{
		carts:     make(map[string]*Cart),
		submitter: submitter,
		logger:    logger.With().Str("component", "cart_manager").Logger(),
	}
}

// Cart returns the cart for the given user, creating an empty one on first
// access.
func (m *Manager) Cart(userID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		c = New(m.submitter, m.logger.With().Str("user_id", userID).Logger())
		m.carts[userID] = c
	}
	return c
}

// Drop discards the user's cart entirely. The next access starts a fresh one.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
}
