package clickhouse

import (
	"context"
	"fmt"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// SegmentAggregateStore implements storage.SegmentAggregateStore using
// ClickHouse. The two rollup views live in separate MergeTree tables and are
// read back ordered by their primary metric.
type SegmentAggregateStore struct {
	conn *Conn
}

// NewSegmentAggregateStore creates a new SegmentAggregateStore.
func NewSegmentAggregateStore(conn *Conn) *SegmentAggregateStore {
	return &SegmentAggregateStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SegmentAggregateStore = (*SegmentAggregateStore)(nil)

// InsertMonetary adds monetary aggregates. Returns ErrDuplicateKey if a
// segment exists.
func (s *SegmentAggregateStore) InsertMonetary(ctx context.Context, aggs []domain.SegmentMonetaryAggregate) error {
	if len(aggs) == 0 {
		return nil
	}

	seen := make(map[domain.Segment]struct{}, len(aggs))
	for _, a := range aggs {
		if a.Segment == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[a.Segment]; dup {
			return storage.ErrDuplicateKey
		}
		seen[a.Segment] = struct{}{}

		exists, err := s.exists(ctx, "segment_monetary_aggregates", a.Segment)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO segment_monetary_aggregates (segment, customers, total_monetary, average_monetary)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, a := range aggs {
		if err := batch.Append(string(a.Segment), uint32(a.Customers), a.TotalMonetary, a.AverageMonetary); err != nil {
			return fmt.Errorf("append monetary aggregate: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send monetary aggregates: %w", err)
	}
	return nil
}

// GetMonetary retrieves monetary aggregates ordered by total_monetary DESC.
func (s *SegmentAggregateStore) GetMonetary(ctx context.Context) ([]domain.SegmentMonetaryAggregate, error) {
	query := `
		SELECT segment, customers, total_monetary, average_monetary
		FROM segment_monetary_aggregates
		ORDER BY total_monetary DESC, segment ASC
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query monetary aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []domain.SegmentMonetaryAggregate
	for rows.Next() {
		var (
			segment   string
			customers uint32
			total     float64
			average   float64
		)
		if err := rows.Scan(&segment, &customers, &total, &average); err != nil {
			return nil, fmt.Errorf("scan monetary aggregate: %w", err)
		}
		aggs = append(aggs, domain.SegmentMonetaryAggregate{
			Segment:         domain.Segment(segment),
			Customers:       int(customers),
			TotalMonetary:   total,
			AverageMonetary: average,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monetary aggregates: %w", err)
	}
	return aggs, nil
}

// InsertVolume adds volume aggregates. Returns ErrDuplicateKey if a segment
// exists.
func (s *SegmentAggregateStore) InsertVolume(ctx context.Context, aggs []domain.SegmentVolumeAggregate) error {
	if len(aggs) == 0 {
		return nil
	}

	seen := make(map[domain.Segment]struct{}, len(aggs))
	for _, a := range aggs {
		if a.Segment == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[a.Segment]; dup {
			return storage.ErrDuplicateKey
		}
		seen[a.Segment] = struct{}{}

		exists, err := s.exists(ctx, "segment_volume_aggregates", a.Segment)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO segment_volume_aggregates (segment, order_lines, total_quantity, total_sales_amount)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, a := range aggs {
		if err := batch.Append(string(a.Segment), uint32(a.OrderLines), a.TotalQuantity, a.TotalSalesAmount); err != nil {
			return fmt.Errorf("append volume aggregate: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send volume aggregates: %w", err)
	}
	return nil
}

// GetVolume retrieves volume aggregates ordered by total_sales_amount DESC.
func (s *SegmentAggregateStore) GetVolume(ctx context.Context) ([]domain.SegmentVolumeAggregate, error) {
	query := `
		SELECT segment, order_lines, total_quantity, total_sales_amount
		FROM segment_volume_aggregates
		ORDER BY total_sales_amount DESC, segment ASC
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query volume aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []domain.SegmentVolumeAggregate
	for rows.Next() {
		var (
			segment  string
			lines    uint32
			quantity int64
			sales    float64
		)
		if err := rows.Scan(&segment, &lines, &quantity, &sales); err != nil {
			return nil, fmt.Errorf("scan volume aggregate: %w", err)
		}
		aggs = append(aggs, domain.SegmentVolumeAggregate{
			Segment:          domain.Segment(segment),
			OrderLines:       int(lines),
			TotalQuantity:    quantity,
			TotalSalesAmount: sales,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volume aggregates: %w", err)
	}
	return aggs, nil
}

// Clear removes all aggregates from both views.
func (s *SegmentAggregateStore) Clear(ctx context.Context) error {
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE segment_monetary_aggregates`); err != nil {
		return fmt.Errorf("clear monetary aggregates: %w", err)
	}
	if err := s.conn.Exec(ctx, `TRUNCATE TABLE segment_volume_aggregates`); err != nil {
		return fmt.Errorf("clear volume aggregates: %w", err)
	}
	return nil
}

// exists reports whether a segment row is already present in the given table.
func (s *SegmentAggregateStore) exists(ctx context.Context, table string, segment domain.Segment) (bool, error) {
	query := fmt.Sprintf(`SELECT count() FROM %s WHERE segment = ?`, table)
	var count uint64
	if err := s.conn.QueryRow(ctx, query, string(segment)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
