package ingest

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"property-comps/internal/storage"
)

// Job asks for one raw response to be ingested.
type Job struct {
	RawResponseID int64
	SessionID     string
	Timestamp     time.Time
}

// Queue is a bounded job queue drained by a fixed pool of workers.
// Enqueue never blocks; a job that does not fit is dropped and its row marked failed.
type Queue struct {
	proc    *Processor
	store   Store
	jobs    chan Job
	workers int

	mu     sync.RWMutex
	closed bool
	group  *errgroup.Group
}

func NewQueue(proc *Processor, store Store, size, workers int) *Queue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		proc:    proc,
		store:   store,
		jobs:    make(chan Job, size),
		workers: workers,
	}
}

// Start launches the workers. They stop once Close has been called and the
// queue is drained.
func (q *Queue) Start(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < q.workers; i++ {
		worker := i + 1
		g.Go(func() error {
			q.work(ctx, worker)
			return nil
		})
	}
	q.group = g
	log.Printf("[IngestQueue] %d workers started", q.workers)
}

func (q *Queue) work(ctx context.Context, worker int) {
	for job := range q.jobs {
		stats, err := q.proc.Process(ctx, job.RawResponseID, job.SessionID)
		if err != nil {
			log.Printf("[IngestWorker %d] raw response %d failed: %v", worker, job.RawResponseID, err)
			continue
		}
		log.Printf("[IngestWorker %d] raw response %d completed: %d properties, %d events, %d duplicates (took %v)",
			worker, job.RawResponseID, stats.Properties, stats.Events, stats.Duplicates, time.Since(job.Timestamp))
	}
}

// Enqueue schedules a raw response for ingestion.
func (q *Queue) Enqueue(rawResponseID int64, sessionID string) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		log.Printf("[IngestQueue] queue closed, skipping raw response %d", rawResponseID)
		return
	}

	job := Job{RawResponseID: rawResponseID, SessionID: sessionID, Timestamp: time.Now()}

	// Non-blocking send
	select {
	case q.jobs <- job:
	default:
		log.Printf("[IngestQueue] queue full! dropping raw response %d", rawResponseID)
		errMsg := "queue full, job dropped"
		if err := q.store.UpdateRawResponseStatus(context.Background(), rawResponseID, storage.StatusFailed, &errMsg); err != nil {
			log.Printf("[IngestQueue] could not mark raw response %d failed: %v", rawResponseID, err)
		}
	}
}

// Close stops accepting jobs and waits for the workers to drain the queue.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	if q.group == nil {
		return nil
	}
	return q.group.Wait()
}
