package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// ClassifiedCustomerStore implements storage.ClassifiedCustomerStore using
// PostgreSQL. The rfm_scores table is the batch equivalent of the source
// system's materialized RFM view.
type ClassifiedCustomerStore struct {
	pool *Pool
}

// NewClassifiedCustomerStore creates a new ClassifiedCustomerStore.
func NewClassifiedCustomerStore(pool *Pool) *ClassifiedCustomerStore {
	return &ClassifiedCustomerStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ClassifiedCustomerStore = (*ClassifiedCustomerStore)(nil)

// InsertBulk adds classified customers atomically. Returns ErrDuplicateKey if
// a customer_id exists; the whole batch fails.
func (s *ClassifiedCustomerStore) InsertBulk(ctx context.Context, customers []domain.ClassifiedCustomer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rfm_scores (
			customer_id, recency_days, frequency, monetary,
			r_score, f_score, m_score,
			total_score, combination_code, segment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, c := range customers {
		if c.CustomerID == "" {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, query,
			c.CustomerID, c.RecencyDays, c.Frequency, c.Monetary,
			c.RScore, c.FScore, c.MScore,
			c.TotalScore, c.CombinationCode, string(c.Segment),
		); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert rfm score: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByCustomerID retrieves one classified customer. Returns ErrNotFound if
// not exists.
func (s *ClassifiedCustomerStore) GetByCustomerID(ctx context.Context, customerID string) (*domain.ClassifiedCustomer, error) {
	query := selectClassified + ` WHERE customer_id = $1`
	var c domain.ClassifiedCustomer
	var seg string
	err := s.pool.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID, &c.RecencyDays, &c.Frequency, &c.Monetary,
		&c.RScore, &c.FScore, &c.MScore,
		&c.TotalScore, &c.CombinationCode, &seg,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get rfm score: %w", err)
	}
	c.Segment = domain.Segment(seg)
	return &c, nil
}

// GetAll retrieves all classified customers ordered by customer_id ASC.
func (s *ClassifiedCustomerStore) GetAll(ctx context.Context) ([]domain.ClassifiedCustomer, error) {
	rows, err := s.pool.Query(ctx, selectClassified+` ORDER BY customer_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query rfm scores: %w", err)
	}
	defer rows.Close()

	return scanClassified(rows)
}

// GetBySegment retrieves all customers in a segment ordered by customer_id ASC.
func (s *ClassifiedCustomerStore) GetBySegment(ctx context.Context, segment domain.Segment) ([]domain.ClassifiedCustomer, error) {
	rows, err := s.pool.Query(ctx, selectClassified+` WHERE segment = $1 ORDER BY customer_id ASC`, string(segment))
	if err != nil {
		return nil, fmt.Errorf("query rfm scores by segment: %w", err)
	}
	defer rows.Close()

	return scanClassified(rows)
}

// Clear removes all classified customers.
func (s *ClassifiedCustomerStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE rfm_scores`); err != nil {
		return fmt.Errorf("clear rfm scores: %w", err)
	}
	return nil
}

const selectClassified = `
	SELECT customer_id, recency_days, frequency, monetary,
	       r_score, f_score, m_score,
	       total_score, combination_code, segment
	FROM rfm_scores
`

func scanClassified(rows pgx.Rows) ([]domain.ClassifiedCustomer, error) {
	var customers []domain.ClassifiedCustomer
	for rows.Next() {
		var c domain.ClassifiedCustomer
		var seg string
		if err := rows.Scan(
			&c.CustomerID, &c.RecencyDays, &c.Frequency, &c.Monetary,
			&c.RScore, &c.FScore, &c.MScore,
			&c.TotalScore, &c.CombinationCode, &seg,
		); err != nil {
			return nil, fmt.Errorf("scan rfm score: %w", err)
		}
		c.Segment = domain.Segment(seg)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rfm scores: %w", err)
	}
	return customers, nil
}
