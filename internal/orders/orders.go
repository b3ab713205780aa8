// Package orders defines the order source consumed by the quote service.
// The persistent order store lives in the surrounding order-management
// system; this package only declares the capability and ships an in-memory
// implementation for tests and local development.
package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/tournevent/rating/pkg/rating"
)

// Source supplies orders to the quote service and records carrier
// selections on them.
type Source interface {
	// GetOrder returns the order by ID.
	GetOrder(ctx context.Context, id string) (*rating.Order, error)

	// SetCarrier records the carrier applied to the order.
	SetCarrier(ctx context.Context, orderID, carrier string) error
}

// MemoryStore is an in-memory Source.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*rating.Order
}

// NewMemoryStore creates an empty in-memory order store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*rating.Order)}
}

// Put adds or replaces an order.
func (s *MemoryStore) Put(order *rating.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
}

// GetOrder returns the order by ID. Callers get a shallow copy so a rating
// call can never mutate the stored order.
func (s *MemoryStore) GetOrder(ctx context.Context, id string) (*rating.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", rating.ErrOrderNotFound, id)
	}
	copied := *order
	return &copied, nil
}

// SetCarrier records the carrier applied to the order.
func (s *MemoryStore) SetCarrier(ctx context.Context, orderID, carrier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", rating.ErrOrderNotFound, orderID)
	}
	order.CarrierName = carrier
	return nil
}

var _ Source = (*MemoryStore)(nil)
