package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// ClassifiedCustomerStore is an in-memory implementation of storage.ClassifiedCustomerStore.
type ClassifiedCustomerStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ClassifiedCustomer // keyed by customer_id
}

// NewClassifiedCustomerStore creates a new in-memory classified customer store.
func NewClassifiedCustomerStore() *ClassifiedCustomerStore {
	return &ClassifiedCustomerStore{
		data: make(map[string]*domain.ClassifiedCustomer),
	}
}

// Compile-time interface check.
var _ storage.ClassifiedCustomerStore = (*ClassifiedCustomerStore)(nil)

// InsertBulk adds classified customers. Returns ErrDuplicateKey if a customer_id exists.
func (s *ClassifiedCustomerStore) InsertBulk(_ context.Context, customers []domain.ClassifiedCustomer) error {
	if len(customers) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		if c.CustomerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[c.CustomerID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[c.CustomerID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[c.CustomerID] = struct{}{}
	}

	for _, c := range customers {
		cp := c
		s.data[c.CustomerID] = &cp
	}
	return nil
}

// GetByCustomerID retrieves one classified customer. Returns ErrNotFound if not exists.
func (s *ClassifiedCustomerStore) GetByCustomerID(_ context.Context, customerID string) (*domain.ClassifiedCustomer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.data[customerID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// GetAll retrieves all classified customers ordered by customer_id ASC.
func (s *ClassifiedCustomerStore) GetAll(_ context.Context) ([]domain.ClassifiedCustomer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ClassifiedCustomer, 0, len(s.data))
	for _, c := range s.data {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

// GetBySegment retrieves all customers in a segment ordered by customer_id ASC.
func (s *ClassifiedCustomerStore) GetBySegment(_ context.Context, segment domain.Segment) ([]domain.ClassifiedCustomer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ClassifiedCustomer
	for _, c := range s.data {
		if c.Segment == segment {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

// Clear removes all classified customers.
func (s *ClassifiedCustomerStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*domain.ClassifiedCustomer)
	return nil
}
