// Package main provides the CSV ingestion entry point.
// Reads a sales CSV, normalizes it, and loads it into PostgreSQL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/idhash"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/ingest"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/normalize"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/observability"
	"github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/migrations"
	pgstore "github.com/Jafanakings/RFM-SEGMENTATION/internal/storage/postgres"
)

func main() {
	// Parse flags
	csvPath := flag.String("csv", "", "Path to the sales CSV file")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (defaults to $POSTGRES_DSN)")
	skipBadRows := flag.Bool("skip-bad-rows", false, "Drop unparseable rows instead of aborting the batch")
	dryRun := flag.Bool("dry-run", false, "Read and normalize only; do not touch the database")
	migrate := flag.Bool("migrate", true, "Apply schema migrations before inserting")
	chunkSize := flag.Int("chunk-size", 1000, "Order lines per insert batch")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags)

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Missing required flag: --csv")
		flag.Usage()
		os.Exit(1)
	}
	dsn := *postgresDSN
	if dsn == "" {
		dsn = os.Getenv("POSTGRES_DSN")
	}
	if dsn == "" && !*dryRun {
		fmt.Fprintln(os.Stderr, "No PostgreSQL DSN. Use --postgres-dsn, $POSTGRES_DSN, or --dry-run")
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling ingest...\n", sig)
		cancel()
	}()

	// Read and normalize the CSV
	rows, err := ingest.ReadFile(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Read %d raw rows from %s", len(rows), *csvPath)
	observability.RecordRowsRead(len(rows))

	normalizer := normalize.New()
	if *skipBadRows {
		normalizer = normalizer.WithPolicy(normalize.PolicySkip)
	}
	lines, err := normalizer.NormalizeBatch(rows)
	if err != nil {
		var perr *normalize.ParseError
		if errors.As(err, &perr) {
			observability.RecordParseError(perr.Field)
		}
		fmt.Fprintf(os.Stderr, "Error normalizing batch: %v\n", err)
		os.Exit(1)
	}
	if normalizer.Skipped > 0 {
		logger.Printf("Skipped %d malformed rows", normalizer.Skipped)
		observability.RecordRowsSkipped(normalizer.Skipped)
	}

	batchID := idhash.ComputeBatchID(lines)
	if *dryRun {
		logger.Printf("Dry run: %d order lines valid (batch %s), nothing written", len(lines), idhash.ShortForm(batchID))
		return
	}

	// Connect and migrate
	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
			os.Exit(1)
		}
	}

	// Insert in chunks
	store := pgstore.NewOrderLineStore(pool)
	bar := progressbar.Default(int64(len(lines)), "inserting")
	for start := 0; start < len(lines); start += *chunkSize {
		end := start + *chunkSize
		if end > len(lines) {
			end = len(lines)
		}
		if err := store.InsertBulk(ctx, lines[start:end]); err != nil {
			fmt.Fprintf(os.Stderr, "\nError inserting order lines: %v\n", err)
			os.Exit(1)
		}
		_ = bar.Add(end - start)
		observability.RecordOrderLinesIngested(end - start)
	}

	logger.Printf("Ingested %d order lines (batch %s)", len(lines), idhash.ShortForm(batchID))
}
