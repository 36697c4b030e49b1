package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"property-comps/internal/comps"
	"property-comps/internal/property"
	"property-comps/internal/storage"
)

// Resolver is the comparable search the API fronts.
type Resolver interface {
	Resolve(ctx context.Context, req comps.Request) (*property.Result, error)
	EventHistory(ctx context.Context, propertyID int64, start time.Time, userID string) ([]property.Event, error)
}

// Store is the read side the API exposes.
type Store interface {
	GetRawResponse(ctx context.Context, id int64) (*storage.RawResponse, error)
	CountProperties(ctx context.Context) (int, error)
	CountRawResponsesByStatus(ctx context.Context) (map[storage.ProcessingStatus]int, error)
}

type API struct {
	resolver Resolver
	store    Store
}

func NewAPI(resolver Resolver, store Store) *API {
	return &API{resolver: resolver, store: store}
}

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *property.ValidationError
		uerr *property.UpstreamError
	)
	switch {
	case errors.Is(err, property.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, property.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &verr):
		http.Error(w, verr.Message, http.StatusUnprocessableEntity)
	case errors.As(err, &uerr):
		log.Printf("[API] upstream failure: %v", err)
		http.Error(w, "property data provider failed", http.StatusBadGateway)
	default:
		log.Printf("[API] internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}
