// Package main provides the segmentation pipeline entry point.
// Executes: summarization → scoring → classification → aggregation → reporting
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/idhash"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/ingest"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/normalize"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/observability"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/pipeline"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/reporting"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage"
	chstore "github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/clickhouse"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/memory"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/migrations"
	pgstore "github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/postgres"
)

// stores bundles every store the pipeline and report generator need,
// regardless of which backend provides each one.
type stores struct {
	orderLines storage.OrderLineStore
	summaries  storage.CustomerSummaryStore
	classified storage.ClassifiedCustomerStore
	aggregates storage.SegmentAggregateStore
}

func main() {
	// Parse flags
	csvPath := flag.String("csv", "", "Score a CSV file directly using in-memory storage")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (defaults to $POSTGRES_DSN)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string for segment aggregates (defaults to $CLICKHOUSE_DSN, empty keeps aggregates in memory)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	migrate := flag.Bool("migrate", true, "Apply schema migrations before running")
	outputDir := flag.String("output-dir", "reports", "Output directory for generated files")
	skipBadRows := flag.Bool("skip-bad-rows", false, "Drop unparseable CSV rows instead of aborting")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	logger := log.New(os.Stdout, "[rfm] ", log.LstdFlags)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling pipeline...\n", sig)
		cancel()
	}()

	st, cleanup, err := buildStores(ctx, *csvPath, *postgresDSN, *clickhouseDSN, *useMemory, *migrate, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// Load a CSV directly when requested
	if *csvPath != "" {
		if err := loadCSV(ctx, st.orderLines, *csvPath, *skipBadRows, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading CSV: %v\n", err)
			os.Exit(1)
		}
	}

	// Run the pipeline
	runner := pipeline.New(pipeline.Options{
		OrderLineStore:  st.orderLines,
		SummaryStore:    st.summaries,
		ClassifiedStore: st.classified,
		AggregateStore:  st.aggregates,
		Verbose:         *verbose,
	})

	started := time.Now()
	result, err := runner.Run(ctx)
	if err != nil {
		observability.RecordPipelineRun("error", time.Since(started).Seconds())
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}
	observability.RecordPipelineRun("ok", time.Since(started).Seconds())
	observability.RecordCustomersScored(result.Customers)
	observability.RecordAggregatesComputed(len(result.Monetary) + len(result.Volume))

	fmt.Println("=== RFM Segmentation ===")
	fmt.Printf("  Batch:       %s\n", idhash.ShortForm(result.BatchID))
	fmt.Printf("  Order lines: %d\n", result.OrderLines)
	fmt.Printf("  Customers:   %d\n", result.Customers)
	fmt.Printf("  Segments:    %d\n", result.Segments)

	// Generate and write reports
	generator := reporting.NewGenerator(st.orderLines, st.classified, st.aggregates)
	report, err := generator.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report generation error: %v\n", err)
		os.Exit(1)
	}

	if err := writeReports(*outputDir, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
		os.Exit(1)
	}
	observability.RecordReportGenerated()
	logger.Printf("Reports written to %s", *outputDir)
}

// buildStores wires the storage backends. CSV and --use-memory runs stay
// fully in memory; otherwise order lines and derived customer views live in
// PostgreSQL, and segment aggregates move to ClickHouse when a DSN is given.
func buildStores(
	ctx context.Context,
	csvPath, postgresDSN, clickhouseDSN string,
	useMemory, migrate bool,
	logger *log.Logger,
) (*stores, func(), error) {
	cleanup := func() {}

	if csvPath != "" || useMemory {
		return &stores{
			orderLines: memory.NewOrderLineStore(),
			summaries:  memory.NewCustomerSummaryStore(),
			classified: memory.NewClassifiedCustomerStore(),
			aggregates: memory.NewSegmentAggregateStore(),
		}, cleanup, nil
	}

	dsn := postgresDSN
	if dsn == "" {
		dsn = os.Getenv("POSTGRES_DSN")
	}
	if dsn == "" {
		return nil, cleanup, fmt.Errorf("no PostgreSQL DSN; use --postgres-dsn, $POSTGRES_DSN, --csv, or --use-memory")
	}

	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return nil, cleanup, fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	cleanup = pool.Close

	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("run postgres migrations: %w", err)
		}
	}

	st := &stores{
		orderLines: pgstore.NewOrderLineStore(pool),
		summaries:  pgstore.NewCustomerSummaryStore(pool),
		classified: pgstore.NewClassifiedCustomerStore(pool),
		aggregates: memory.NewSegmentAggregateStore(),
	}

	chDSN := clickhouseDSN
	if chDSN == "" {
		chDSN = os.Getenv("CLICKHOUSE_DSN")
	}
	if chDSN != "" {
		conn, err := chstore.NewConn(ctx, chDSN)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("connect to ClickHouse: %w", err)
		}
		pgCleanup := cleanup
		cleanup = func() {
			_ = conn.Close()
			pgCleanup()
		}
		if migrate {
			if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
				cleanup()
				return nil, func() {}, fmt.Errorf("run clickhouse migrations: %w", err)
			}
		}
		st.aggregates = chstore.NewSegmentAggregateStore(conn)
	} else {
		logger.Printf("No ClickHouse DSN; keeping segment aggregates in memory")
	}

	return st, cleanup, nil
}

// loadCSV reads and normalizes a CSV file into the order-line store.
func loadCSV(ctx context.Context, store storage.OrderLineStore, path string, skipBadRows bool, logger *log.Logger) error {
	rows, err := ingest.ReadFile(path)
	if err != nil {
		return err
	}

	normalizer := normalize.New()
	if skipBadRows {
		normalizer = normalizer.WithPolicy(normalize.PolicySkip)
	}
	lines, err := normalizer.NormalizeBatch(rows)
	if err != nil {
		return err
	}
	if normalizer.Skipped > 0 {
		logger.Printf("Skipped %d malformed rows", normalizer.Skipped)
	}

	return store.InsertBulk(ctx, lines)
}

// writeReports renders the report to the four output files.
func writeReports(dir string, report *reporting.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := map[string]string{
		"RFM_REPORT.md":        reporting.RenderMarkdown(report),
		"rfm_scores.csv":       reporting.RenderScoresCSV(report.Scores),
		"segment_monetary.csv": reporting.RenderMonetaryCSV(report.Monetary),
		"segment_volume.csv":   reporting.RenderVolumeCSV(report.Volume),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
