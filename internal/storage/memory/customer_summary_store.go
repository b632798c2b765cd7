package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// CustomerSummaryStore is an in-memory implementation of storage.CustomerSummaryStore.
type CustomerSummaryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CustomerSummary // keyed by customer_id
}

// NewCustomerSummaryStore creates a new in-memory customer summary store.
func NewCustomerSummaryStore() *CustomerSummaryStore {
	return &CustomerSummaryStore{
		data: make(map[string]*domain.CustomerSummary),
	}
}

// Compile-time interface check.
var _ storage.CustomerSummaryStore = (*CustomerSummaryStore)(nil)

// InsertBulk adds summaries. Returns ErrDuplicateKey if a customer_id exists.
func (s *CustomerSummaryStore) InsertBulk(_ context.Context, summaries []domain.CustomerSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: detect duplicates (existing + intra-batch).
	batchKeys := make(map[string]struct{}, len(summaries))
	for _, sum := range summaries {
		if sum.CustomerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[sum.CustomerID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[sum.CustomerID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[sum.CustomerID] = struct{}{}
	}

	for _, sum := range summaries {
		cp := sum
		s.data[sum.CustomerID] = &cp
	}
	return nil
}

// GetByCustomerID retrieves one summary. Returns ErrNotFound if not exists.
func (s *CustomerSummaryStore) GetByCustomerID(_ context.Context, customerID string) (*domain.CustomerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, exists := s.data[customerID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	cp := *sum
	return &cp, nil
}

// GetAll retrieves all summaries ordered by customer_id ASC.
func (s *CustomerSummaryStore) GetAll(_ context.Context) ([]domain.CustomerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CustomerSummary, 0, len(s.data))
	for _, sum := range s.data {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

// GetByRecencyRange retrieves summaries with recency_days within [min, max] (inclusive).
func (s *CustomerSummaryStore) GetByRecencyRange(_ context.Context, min, max int) ([]domain.CustomerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CustomerSummary
	for _, sum := range s.data {
		if sum.RecencyDays >= min && sum.RecencyDays <= max {
			out = append(out, *sum)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

// Clear removes all summaries.
func (s *CustomerSummaryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*domain.CustomerSummary)
	return nil
}
