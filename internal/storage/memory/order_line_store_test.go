package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
)

func line(customer, order string, day time.Time, amount float64, qty int64) domain.OrderLine {
	return domain.OrderLine{CustomerID: customer, OrderID: order, OrderDate: day, SalesAmount: amount, Quantity: qty}
}

func TestOrderLineStore_InsertAndGetAll(t *testing.T) {
	store := NewOrderLineStore()
	ctx := context.Background()
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	lines := []domain.OrderLine{
		line("A", "1", day, 100, 2),
		line("B", "2", day.AddDate(0, 0, 2), 50, 1),
	}
	if err := store.InsertBulk(ctx, lines); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0].CustomerID != "A" {
		t.Errorf("insertion order not preserved, got %s first", got[0].CustomerID)
	}
}

func TestOrderLineStore_DuplicateLinesAllowed(t *testing.T) {
	// Lines have no unique key: the same (customer, order) pair may repeat.
	store := NewOrderLineStore()
	ctx := context.Background()
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	l := line("A", "1", day, 100, 2)
	if err := store.InsertBulk(ctx, []domain.OrderLine{l, l}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, _ := store.GetAll(ctx)
	if len(got) != 2 {
		t.Errorf("expected both duplicate lines kept, got %d", len(got))
	}
}

func TestOrderLineStore_InvalidInput(t *testing.T) {
	store := NewOrderLineStore()
	err := store.InsertBulk(context.Background(), []domain.OrderLine{{CustomerID: "", OrderID: "1"}})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOrderLineStore_GetByCustomerID(t *testing.T) {
	store := NewOrderLineStore()
	ctx := context.Background()
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	_ = store.InsertBulk(ctx, []domain.OrderLine{
		line("A", "1", day, 100, 2),
		line("B", "2", day, 50, 1),
		line("A", "3", day, 25, 1),
	})

	got, err := store.GetByCustomerID(ctx, "A")
	if err != nil {
		t.Fatalf("GetByCustomerID failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 lines for A, got %d", len(got))
	}
}

func TestOrderLineStore_GetByDateRange(t *testing.T) {
	store := NewOrderLineStore()
	ctx := context.Background()
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	_ = store.InsertBulk(ctx, []domain.OrderLine{
		line("A", "1", day, 100, 2),
		line("B", "2", day.AddDate(0, 0, 5), 50, 1),
		line("C", "3", day.AddDate(0, 0, 10), 25, 1),
	})

	got, err := store.GetByDateRange(ctx, day, day.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 lines in range (bounds inclusive), got %d", len(got))
	}
}
