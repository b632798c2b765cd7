package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// OrderLineStore is an in-memory implementation of storage.OrderLineStore.
type OrderLineStore struct {
	mu    sync.RWMutex
	lines []domain.OrderLine
}

// NewOrderLineStore creates a new in-memory order line store.
func NewOrderLineStore() *OrderLineStore {
	return &OrderLineStore{}
}

// Compile-time interface check.
var _ storage.OrderLineStore = (*OrderLineStore)(nil)

// InsertBulk appends a batch of order lines.
func (s *OrderLineStore) InsertBulk(_ context.Context, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for _, l := range lines {
		if l.CustomerID == "" || l.OrderID == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, lines...)
	return nil
}

// GetAll retrieves the full batch in insertion order.
func (s *OrderLineStore) GetAll(_ context.Context) ([]domain.OrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.OrderLine, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// GetByCustomerID retrieves all lines for one customer.
func (s *OrderLineStore) GetByCustomerID(_ context.Context, customerID string) ([]domain.OrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.OrderLine
	for _, l := range s.lines {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

// GetByDateRange retrieves lines with order date within [start, end] (inclusive).
func (s *OrderLineStore) GetByDateRange(_ context.Context, start, end time.Time) ([]domain.OrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.OrderLine
	for _, l := range s.lines {
		if !l.OrderDate.Before(start) && !l.OrderDate.After(end) {
			out = append(out, l)
		}
	}
	return out, nil
}
