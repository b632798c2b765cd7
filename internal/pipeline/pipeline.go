// Package pipeline provides E2E segmentation pipeline orchestration.
// It coordinates: summarization → scoring → classification → aggregation
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/idhash"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/scoring"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/segment"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/summarize"
)

// Runner executes the full segmentation pipeline over the stored batch.
// Derived stores are cleared and rebuilt on every run; recomputation from
// the order-line batch is the only update path.
type Runner struct {
	orderLineStore  storage.OrderLineStore
	summaryStore    storage.CustomerSummaryStore
	classifiedStore storage.ClassifiedCustomerStore
	aggregateStore  storage.SegmentAggregateStore

	verbose bool
}

// Options for creating Runner.
type Options struct {
	// Required stores
	OrderLineStore  storage.OrderLineStore
	SummaryStore    storage.CustomerSummaryStore
	ClassifiedStore storage.ClassifiedCustomerStore
	AggregateStore  storage.SegmentAggregateStore

	Verbose bool
}

// New creates a new Runner.
func New(opts Options) *Runner {
	return &Runner{
		orderLineStore:  opts.OrderLineStore,
		summaryStore:    opts.SummaryStore,
		classifiedStore: opts.ClassifiedStore,
		aggregateStore:  opts.AggregateStore,
		verbose:         opts.Verbose,
	}
}

// RunResult contains results from pipeline execution.
type RunResult struct {
	// BatchID is the content fingerprint of the order-line batch.
	BatchID string

	OrderLines int
	Customers  int
	Segments   int

	Summaries  []domain.CustomerSummary
	Classified []domain.ClassifiedCustomer
	Monetary   []domain.SegmentMonetaryAggregate
	Volume     []domain.SegmentVolumeAggregate
}

// Run executes the full pipeline.
// Phases:
//  1. Load the order-line batch
//  2. Summarize per customer (recency, frequency, monetary)
//  3. Score quintiles and classify segments
//  4. Aggregate per segment and persist all derived views
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}

	// Phase 1: Load the batch
	r.log("Phase 1: Loading order lines...")
	lines, err := r.orderLineStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("phase 1 (load order lines) failed: %w", err)
	}
	result.BatchID = idhash.ComputeBatchID(lines)
	result.OrderLines = len(lines)
	r.log("  Found %d order lines (batch %s)", len(lines), idhash.ShortForm(result.BatchID))

	if len(lines) == 0 {
		if err := r.clearDerived(ctx); err != nil {
			return nil, err
		}
		return result, nil
	}

	// Phase 2: Summarization
	r.log("Phase 2: Summarizing customers...")
	summaries := summarize.Customers(lines)
	result.Summaries = summaries
	result.Customers = len(summaries)
	r.log("  Summarized %d customers", len(summaries))

	// Phase 3: Scoring and classification
	r.log("Phase 3: Scoring quintiles...")
	scores := scoring.Score(summaries)
	classified := segment.ClassifyAll(scores)
	result.Classified = classified

	// Phase 4: Aggregation and persistence
	r.log("Phase 4: Aggregating segments...")
	monetary := segment.AggregateMonetary(classified)
	volume := segment.AggregateVolume(lines, classified)
	result.Monetary = monetary
	result.Volume = volume
	result.Segments = len(monetary)
	r.log("  Built %d monetary and %d volume aggregates", len(monetary), len(volume))

	if err := r.persist(ctx, summaries, classified, monetary, volume); err != nil {
		return nil, fmt.Errorf("phase 4 (persist) failed: %w", err)
	}

	r.log("Pipeline completed: %d lines, %d customers, %d segments",
		result.OrderLines, result.Customers, result.Segments)

	return result, nil
}

// persist rebuilds all derived views from scratch.
func (r *Runner) persist(
	ctx context.Context,
	summaries []domain.CustomerSummary,
	classified []domain.ClassifiedCustomer,
	monetary []domain.SegmentMonetaryAggregate,
	volume []domain.SegmentVolumeAggregate,
) error {
	if err := r.clearDerived(ctx); err != nil {
		return err
	}
	if err := r.summaryStore.InsertBulk(ctx, summaries); err != nil {
		return fmt.Errorf("insert summaries: %w", err)
	}
	if err := r.classifiedStore.InsertBulk(ctx, classified); err != nil {
		return fmt.Errorf("insert classified customers: %w", err)
	}
	if err := r.aggregateStore.InsertMonetary(ctx, monetary); err != nil {
		return fmt.Errorf("insert monetary aggregates: %w", err)
	}
	if err := r.aggregateStore.InsertVolume(ctx, volume); err != nil {
		return fmt.Errorf("insert volume aggregates: %w", err)
	}
	return nil
}

func (r *Runner) clearDerived(ctx context.Context) error {
	if err := r.summaryStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear summaries: %w", err)
	}
	if err := r.classifiedStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear classified customers: %w", err)
	}
	if err := r.aggregateStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear aggregates: %w", err)
	}
	return nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.verbose {
		log.Printf(format, args...)
	}
}
