package storage

import (
	"context"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// OrderLineStore provides access to the raw order-line batch.
type OrderLineStore interface {
	// InsertBulk adds a batch of order lines. Lines have no natural unique
	// key; every call appends.
	InsertBulk(ctx context.Context, lines []domain.OrderLine) error

	// GetAll retrieves the full batch in insertion order.
	GetAll(ctx context.Context) ([]domain.OrderLine, error)

	// GetByCustomerID retrieves all lines for one customer.
	GetByCustomerID(ctx context.Context, customerID string) ([]domain.OrderLine, error)

	// GetByDateRange retrieves lines with order date within [start, end] (inclusive).
	GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.OrderLine, error)
}

// CustomerSummaryStore provides access to derived per-customer summaries.
type CustomerSummaryStore interface {
	// InsertBulk adds summaries. Returns ErrDuplicateKey if a customer_id exists.
	InsertBulk(ctx context.Context, summaries []domain.CustomerSummary) error

	// GetByCustomerID retrieves one summary. Returns ErrNotFound if not exists.
	GetByCustomerID(ctx context.Context, customerID string) (*domain.CustomerSummary, error)

	// GetAll retrieves all summaries ordered by customer_id ASC.
	GetAll(ctx context.Context) ([]domain.CustomerSummary, error)

	// GetByRecencyRange retrieves summaries with recency_days within [min, max] (inclusive).
	GetByRecencyRange(ctx context.Context, min, max int) ([]domain.CustomerSummary, error)

	// Clear removes all summaries. Recomputation from scratch is the only
	// update path.
	Clear(ctx context.Context) error
}

// ClassifiedCustomerStore provides access to the per-customer RFM view.
type ClassifiedCustomerStore interface {
	// InsertBulk adds classified customers. Returns ErrDuplicateKey if a
	// customer_id exists.
	InsertBulk(ctx context.Context, customers []domain.ClassifiedCustomer) error

	// GetByCustomerID retrieves one classified customer. Returns ErrNotFound
	// if not exists.
	GetByCustomerID(ctx context.Context, customerID string) (*domain.ClassifiedCustomer, error)

	// GetAll retrieves all classified customers ordered by customer_id ASC.
	GetAll(ctx context.Context) ([]domain.ClassifiedCustomer, error)

	// GetBySegment retrieves all customers in a segment ordered by customer_id ASC.
	GetBySegment(ctx context.Context, segment domain.Segment) ([]domain.ClassifiedCustomer, error)

	// Clear removes all classified customers.
	Clear(ctx context.Context) error
}

// SegmentAggregateStore provides access to the two per-segment rollup views.
type SegmentAggregateStore interface {
	// InsertMonetary adds monetary aggregates. Returns ErrDuplicateKey if a
	// segment exists.
	InsertMonetary(ctx context.Context, aggs []domain.SegmentMonetaryAggregate) error

	// GetMonetary retrieves monetary aggregates ordered by total_monetary DESC.
	GetMonetary(ctx context.Context) ([]domain.SegmentMonetaryAggregate, error)

	// InsertVolume adds volume aggregates. Returns ErrDuplicateKey if a
	// segment exists.
	InsertVolume(ctx context.Context, aggs []domain.SegmentVolumeAggregate) error

	// GetVolume retrieves volume aggregates ordered by total_sales_amount DESC.
	GetVolume(ctx context.Context) ([]domain.SegmentVolumeAggregate, error)

	// Clear removes all aggregates from both views.
	Clear(ctx context.Context) error
}
