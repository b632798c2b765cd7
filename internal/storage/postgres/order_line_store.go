package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

// OrderLineStore implements storage.OrderLineStore using PostgreSQL.
type OrderLineStore struct {
	pool *Pool
}

// NewOrderLineStore creates a new OrderLineStore.
func NewOrderLineStore(pool *Pool) *OrderLineStore {
	return &OrderLineStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OrderLineStore = (*OrderLineStore)(nil)

// InsertBulk adds a batch of order lines in one transaction.
func (s *OrderLineStore) InsertBulk(ctx context.Context, lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for _, l := range lines {
		if l.CustomerID == "" || l.OrderID == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO order_lines (customer_id, order_id, order_date, sales_amount, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, l := range lines {
		if _, err := tx.Exec(ctx, query,
			l.CustomerID, l.OrderID, l.OrderDate, l.SalesAmount, l.Quantity,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetAll retrieves the full batch in insertion order.
func (s *OrderLineStore) GetAll(ctx context.Context) ([]domain.OrderLine, error) {
	query := `
		SELECT customer_id, order_id, order_date, sales_amount, quantity
		FROM order_lines
		ORDER BY id ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	return scanOrderLines(rows)
}

// GetByCustomerID retrieves all lines for one customer.
func (s *OrderLineStore) GetByCustomerID(ctx context.Context, customerID string) ([]domain.OrderLine, error) {
	query := `
		SELECT customer_id, order_id, order_date, sales_amount, quantity
		FROM order_lines
		WHERE customer_id = $1
		ORDER BY id ASC
	`
	rows, err := s.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query order lines by customer: %w", err)
	}
	defer rows.Close()

	return scanOrderLines(rows)
}

// GetByDateRange retrieves lines with order date within [start, end] (inclusive).
func (s *OrderLineStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.OrderLine, error) {
	query := `
		SELECT customer_id, order_id, order_date, sales_amount, quantity
		FROM order_lines
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY id ASC
	`
	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query order lines by date range: %w", err)
	}
	defer rows.Close()

	return scanOrderLines(rows)
}

func scanOrderLines(rows pgx.Rows) ([]domain.OrderLine, error) {
	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.CustomerID, &l.OrderID, &l.OrderDate, &l.SalesAmount, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		// DATE columns come back at midnight in the session zone.
		l.OrderDate = l.OrderDate.UTC()
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return lines, nil
}
