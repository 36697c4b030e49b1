package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "property-comps/docs" // Swagger docs
	"property-comps/internal/api"
	"property-comps/internal/comps"
	"property-comps/internal/config"
	"property-comps/internal/ingest"
	"property-comps/internal/parcl"
	"property-comps/internal/rawcache"
	"property-comps/internal/storage"
	phttp "property-comps/pkg/http"
)

// @title Property Comparables API
// @version 1.0
// @description Comparable property search over the Parcl Labs API with a raw response cache and background ingestion

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		log.Fatal("tuning:", err)
	}

	log.Printf("Connecting to %s database...", cfg.DatabaseDriver)
	db, err := storage.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open:", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal("db migrate:", err)
	}
	log.Println("Database connected successfully!")

	if cfg.ParclAPIKey == "" {
		log.Println("Warning: PARCL_API_KEY is not set, provider calls will be rejected")
	}

	// Background ingestion of cached provider responses
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	queue := ingest.NewQueue(ingest.NewProcessor(db), db, cfg.IngestQueueSize, cfg.IngestWorkers)
	queue.Start(workerCtx)

	cache := rawcache.New(db, queue)
	client := parcl.NewClient(cfg.ParclBaseURL, cfg.ParclAPIKey,
		phttp.NewClient(cfg.ParclTimeout, cfg.ParclRatePerS, cfg.ParclRateBurst))
	resolver := comps.NewResolver(client, db, cache, tuning)

	router := api.NewRouter(api.NewAPI(resolver, db))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // two provider searches, each up to PARCL_TIMEOUT_SECONDS
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("API server listening on :%s\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed

	// Pending cache writes enqueue ingestion jobs, so drain them before the queue.
	resolver.Wait()
	if err := queue.Close(); err != nil {
		log.Println("ingest queue:", err)
	}
	log.Println("Shutdown complete")
}
