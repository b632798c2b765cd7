package idhash

import (
	"testing"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

func fixtureLines() []domain.OrderLine {
	day := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	return []domain.OrderLine{
		{CustomerID: "A", OrderID: "1", OrderDate: day, SalesAmount: 100, Quantity: 2},
		{CustomerID: "B", OrderID: "2", OrderDate: day.AddDate(0, 0, 1), SalesAmount: 50, Quantity: 1},
	}
}

func TestComputeBatchID_Deterministic(t *testing.T) {
	lines := fixtureLines()
	first := ComputeBatchID(lines)
	second := ComputeBatchID(lines)
	if first != second {
		t.Errorf("same batch produced different IDs: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestComputeBatchID_OrderInsensitive(t *testing.T) {
	lines := fixtureLines()
	reversed := []domain.OrderLine{lines[1], lines[0]}
	if ComputeBatchID(lines) != ComputeBatchID(reversed) {
		t.Error("batch ID depends on input order")
	}
}

func TestComputeBatchID_SensitiveToContent(t *testing.T) {
	lines := fixtureLines()
	changed := fixtureLines()
	changed[0].SalesAmount = 101

	if ComputeBatchID(lines) == ComputeBatchID(changed) {
		t.Error("different batches produced the same ID")
	}
}

func TestShortForm(t *testing.T) {
	id := ComputeBatchID(fixtureLines())
	short := ShortForm(id)
	if short == "" || short == id {
		t.Errorf("expected condensed form, got %q", short)
	}

	// Malformed input is returned unchanged rather than panicking.
	if got := ShortForm("zz"); got != "zz" {
		t.Errorf("expected passthrough for malformed input, got %q", got)
	}
}
