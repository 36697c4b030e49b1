package main

import (
	"context"
	"flag"
	"log"
	"os"

	"property-comps/internal/ingest"
	"property-comps/internal/storage"
)

func main() {
	var dryRun bool
	var limit int
	var status string
	flag.BoolVar(&dryRun, "dry-run", true, "If true, only list the rows that would be reprocessed")
	flag.IntVar(&limit, "limit", 200, "Max number of raw responses to process in one run")
	flag.StringVar(&status, "status", string(storage.StatusFailed), "Processing status to pick up (pending|processing|failed)")
	flag.Parse()

	switch storage.ProcessingStatus(status) {
	case storage.StatusPending, storage.StatusProcessing, storage.StatusFailed:
	default:
		log.Fatalf("unsupported -status %q", status)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	driver := os.Getenv("DATABASE_DRIVER")
	if driver == "" {
		driver = storage.DriverPostgres
	}

	log.Printf("Connecting to DB...")
	db, err := storage.Open(driver, dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	rows, err := db.ListRawResponsesByStatus(ctx, storage.ProcessingStatus(status), limit)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}
	log.Printf("Found %d raw responses with status %s (limit %d)", len(rows), status, limit)

	proc := ingest.NewProcessor(db)
	var completed, failed int
	for _, r := range rows {
		if dryRun {
			msg := ""
			if r.ErrorMessage != nil {
				msg = *r.ErrorMessage
			}
			log.Printf("[dry-run] would reprocess %d (%s, session %s) %s", r.ID, r.Endpoint, r.SessionID, msg)
			continue
		}

		stats, err := proc.Process(ctx, r.ID, r.SessionID)
		if err != nil {
			log.Printf("raw response %d failed again: %v", r.ID, err)
			failed++
			continue
		}
		log.Printf("raw response %d completed: %d properties, %d events, %d duplicates",
			r.ID, stats.Properties, stats.Events, stats.Duplicates)
		completed++
	}

	if !dryRun {
		log.Printf("Done: %d completed, %d failed", completed, failed)
	}
}
