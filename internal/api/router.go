package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check (for k8s, load balancers, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Comparable search
	mux.HandleFunc("/api/comparables", a.ComparablesHandler)
	mux.HandleFunc("/api/properties/events", a.EventHistoryHandler)

	// Raw response cache and ingestion
	mux.HandleFunc("/api/raw-responses/{id}", a.RawResponseHandler)
	mux.HandleFunc("/api/stats", a.StatsHandler)

	return mux
}
