package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// SegmentAggregateStore is an in-memory implementation of storage.SegmentAggregateStore.
type SegmentAggregateStore struct {
	mu       sync.RWMutex
	monetary map[domain.Segment]*domain.SegmentMonetaryAggregate
	volume   map[domain.Segment]*domain.SegmentVolumeAggregate
}

// NewSegmentAggregateStore creates a new in-memory segment aggregate store.
func NewSegmentAggregateStore() *SegmentAggregateStore {
	return &SegmentAggregateStore{
		monetary: make(map[domain.Segment]*domain.SegmentMonetaryAggregate),
		volume:   make(map[domain.Segment]*domain.SegmentVolumeAggregate),
	}
}

// Compile-time interface check.
var _ storage.SegmentAggregateStore = (*SegmentAggregateStore)(nil)

// InsertMonetary adds monetary aggregates. Returns ErrDuplicateKey if a segment exists.
func (s *SegmentAggregateStore) InsertMonetary(_ context.Context, aggs []domain.SegmentMonetaryAggregate) error {
	if len(aggs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[domain.Segment]struct{}, len(aggs))
	for _, a := range aggs {
		if a.Segment == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.monetary[a.Segment]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[a.Segment]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[a.Segment] = struct{}{}
	}

	for _, a := range aggs {
		cp := a
		s.monetary[a.Segment] = &cp
	}
	return nil
}

// GetMonetary retrieves monetary aggregates ordered by total_monetary DESC.
func (s *SegmentAggregateStore) GetMonetary(_ context.Context) ([]domain.SegmentMonetaryAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SegmentMonetaryAggregate, 0, len(s.monetary))
	for _, a := range s.monetary {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMonetary != out[j].TotalMonetary {
			return out[i].TotalMonetary > out[j].TotalMonetary
		}
		return out[i].Segment < out[j].Segment
	})
	return out, nil
}

// InsertVolume adds volume aggregates. Returns ErrDuplicateKey if a segment exists.
func (s *SegmentAggregateStore) InsertVolume(_ context.Context, aggs []domain.SegmentVolumeAggregate) error {
	if len(aggs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[domain.Segment]struct{}, len(aggs))
	for _, a := range aggs {
		if a.Segment == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.volume[a.Segment]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[a.Segment]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[a.Segment] = struct{}{}
	}

	for _, a := range aggs {
		cp := a
		s.volume[a.Segment] = &cp
	}
	return nil
}

// GetVolume retrieves volume aggregates ordered by total_sales_amount DESC.
func (s *SegmentAggregateStore) GetVolume(_ context.Context) ([]domain.SegmentVolumeAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SegmentVolumeAggregate, 0, len(s.volume))
	for _, a := range s.volume {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSalesAmount != out[j].TotalSalesAmount {
			return out[i].TotalSalesAmount > out[j].TotalSalesAmount
		}
		return out[i].Segment < out[j].Segment
	})
	return out, nil
}

// Clear removes all aggregates from both views.
func (s *SegmentAggregateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monetary = make(map[domain.Segment]*domain.SegmentMonetaryAggregate)
	s.volume = make(map[domain.Segment]*domain.SegmentVolumeAggregate)
	return nil
}
