package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// CustomerSummaryStore implements storage.CustomerSummaryStore using PostgreSQL.
type CustomerSummaryStore struct {
	pool *Pool
}

// NewCustomerSummaryStore creates a new CustomerSummaryStore.
func NewCustomerSummaryStore(pool *Pool) *CustomerSummaryStore {
	return &CustomerSummaryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CustomerSummaryStore = (*CustomerSummaryStore)(nil)

// InsertBulk adds summaries atomically. Returns ErrDuplicateKey if a
// customer_id exists; the whole batch fails.
func (s *CustomerSummaryStore) InsertBulk(ctx context.Context, summaries []domain.CustomerSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO customer_summaries (customer_id, last_order_date, recency_days, frequency, monetary)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, sum := range summaries {
		if sum.CustomerID == "" {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, query,
			sum.CustomerID, sum.LastOrderDate, sum.RecencyDays, sum.Frequency, sum.Monetary,
		); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert customer summary: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByCustomerID retrieves one summary. Returns ErrNotFound if not exists.
func (s *CustomerSummaryStore) GetByCustomerID(ctx context.Context, customerID string) (*domain.CustomerSummary, error) {
	query := `
		SELECT customer_id, last_order_date, recency_days, frequency, monetary
		FROM customer_summaries
		WHERE customer_id = $1
	`
	var sum domain.CustomerSummary
	err := s.pool.QueryRow(ctx, query, customerID).Scan(
		&sum.CustomerID, &sum.LastOrderDate, &sum.RecencyDays, &sum.Frequency, &sum.Monetary,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get customer summary: %w", err)
	}
	sum.LastOrderDate = sum.LastOrderDate.UTC()
	return &sum, nil
}

// GetAll retrieves all summaries ordered by customer_id ASC.
func (s *CustomerSummaryStore) GetAll(ctx context.Context) ([]domain.CustomerSummary, error) {
	query := `
		SELECT customer_id, last_order_date, recency_days, frequency, monetary
		FROM customer_summaries
		ORDER BY customer_id ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query customer summaries: %w", err)
	}
	defer rows.Close()

	return scanCustomerSummaries(rows)
}

// GetByRecencyRange retrieves summaries with recency_days within [min, max] (inclusive).
func (s *CustomerSummaryStore) GetByRecencyRange(ctx context.Context, min, max int) ([]domain.CustomerSummary, error) {
	query := `
		SELECT customer_id, last_order_date, recency_days, frequency, monetary
		FROM customer_summaries
		WHERE recency_days >= $1 AND recency_days <= $2
		ORDER BY customer_id ASC
	`
	rows, err := s.pool.Query(ctx, query, min, max)
	if err != nil {
		return nil, fmt.Errorf("query customer summaries by recency: %w", err)
	}
	defer rows.Close()

	return scanCustomerSummaries(rows)
}

// Clear removes all summaries.
func (s *CustomerSummaryStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE customer_summaries`); err != nil {
		return fmt.Errorf("clear customer summaries: %w", err)
	}
	return nil
}

func scanCustomerSummaries(rows pgx.Rows) ([]domain.CustomerSummary, error) {
	var summaries []domain.CustomerSummary
	for rows.Next() {
		var sum domain.CustomerSummary
		if err := rows.Scan(&sum.CustomerID, &sum.LastOrderDate, &sum.RecencyDays, &sum.Frequency, &sum.Monetary); err != nil {
			return nil, fmt.Errorf("scan customer summary: %w", err)
		}
		sum.LastOrderDate = sum.LastOrderDate.UTC()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer summaries: %w", err)
	}
	return summaries, nil
}
