package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"property-comps/internal/parcl"
	"property-comps/internal/property"
	"property-comps/internal/storage"
)

// Store is the persistence the ingestor needs.
type Store interface {
	GetRawResponse(ctx context.Context, id int64) (*storage.RawResponse, error)
	UpdateRawResponseStatus(ctx context.Context, id int64, status storage.ProcessingStatus, errMsg *string) error
	SaveCandidate(ctx context.Context, p property.Property, src storage.CandidateSource) error
	InsertEvent(ctx context.Context, e property.Event, sessionID string) (bool, error)
}

// Stats counts what one payload produced.
type Stats struct {
	Properties int
	Events     int
	Duplicates int
}

// Processor normalizes cached raw payloads into property and event rows.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// Process runs one raw response through pending -> processing -> completed|failed.
// Failures are recorded on the row and returned for logging only; there is no retry.
func (p *Processor) Process(ctx context.Context, id int64, sessionID string) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			p.markFailed(ctx, id, err)
		}
	}()

	if err := p.store.UpdateRawResponseStatus(ctx, id, storage.StatusProcessing, nil); err != nil {
		return stats, fmt.Errorf("mark processing: %w", err)
	}

	raw, err := p.store.GetRawResponse(ctx, id)
	if err != nil {
		p.markFailed(ctx, id, err)
		return stats, err
	}
	if sessionID == "" {
		sessionID = raw.SessionID
	}

	payload, err := parcl.DecodePayload(raw.Endpoint, raw.ResponseBody)
	switch {
	case errors.Is(err, parcl.ErrUnknownEndpoint):
		log.Printf("[Ingest] raw response %d: no parser for endpoint %q, skipping", id, raw.Endpoint)
	case err != nil:
		p.markFailed(ctx, id, err)
		return stats, err
	default:
		stats, err = p.ingest(ctx, payload, sessionID)
		if err != nil {
			p.markFailed(ctx, id, err)
			return stats, err
		}
	}

	if err := p.store.UpdateRawResponseStatus(ctx, id, storage.StatusCompleted, nil); err != nil {
		return stats, fmt.Errorf("mark completed: %w", err)
	}
	return stats, nil
}

func (p *Processor) ingest(ctx context.Context, payload parcl.Payload, sessionID string) (Stats, error) {
	switch v := payload.(type) {
	case *parcl.AddressSearchResponse:
		return p.saveAll(ctx, v.Properties(), nil, sessionID, "address")
	case *parcl.ComparablesResponse:
		props, events, err := v.Properties()
		if err != nil {
			return Stats{}, err
		}
		return p.saveAll(ctx, props, events, sessionID, "comparable")
	case *parcl.EventHistoryResponse:
		events, err := v.Events()
		if err != nil {
			return Stats{}, err
		}
		return p.saveAll(ctx, nil, events, sessionID, "")
	default:
		return Stats{}, fmt.Errorf("unhandled payload %T", payload)
	}
}

func (p *Processor) saveAll(ctx context.Context, props []property.Property, events []property.Event, sessionID, searchType string) (Stats, error) {
	var stats Stats
	src := storage.CandidateSource{SessionID: sessionID, SearchType: searchType, SearchSource: "ingest"}
	for _, prop := range props {
		if prop.ID == 0 {
			continue
		}
		if err := p.store.SaveCandidate(ctx, prop, src); err != nil {
			return stats, err
		}
		stats.Properties++
	}
	for _, e := range events {
		if e.PropertyID == 0 {
			continue
		}
		added, err := p.store.InsertEvent(ctx, e, sessionID)
		if err != nil {
			return stats, err
		}
		if added {
			stats.Events++
		} else {
			stats.Duplicates++
		}
	}
	return stats, nil
}

func (p *Processor) markFailed(ctx context.Context, id int64, cause error) {
	msg := cause.Error()
	if err := p.store.UpdateRawResponseStatus(ctx, id, storage.StatusFailed, &msg); err != nil {
		log.Printf("[Ingest] raw response %d: could not record failure (%v): %v", id, cause, err)
	}
}
