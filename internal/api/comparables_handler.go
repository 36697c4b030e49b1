package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"property-comps/internal/comps"
	"property-comps/internal/property"
)

// ComparablesRequest represents a comparable search request
type ComparablesRequest struct {
	Address    string            `json:"address"`
	City       string            `json:"city,omitempty"`
	State      string            `json:"state,omitempty"`
	PostalCode string            `json:"postalCode,omitempty"`
	Latitude   *float64          `json:"latitude,omitempty"`  // Overrides the resolved coordinates
	Longitude  *float64          `json:"longitude,omitempty"` // Overrides the resolved coordinates
	Details    *property.Details `json:"propertyDetails,omitempty"`
	UserID     string            `json:"userId,omitempty"`
	SessionID  string            `json:"sessionId,omitempty"`
}

// ComparablesHandler resolves an address and returns its comparables
// @Summary Find comparable properties
// @Description Resolve the subject address, search nearby sales and rentals (widening the criteria once if nothing matches) and tag price outliers
// @Tags comparables
// @Accept json
// @Produce json
// @Param request body ComparablesRequest true "Subject address"
// @Success 200 {object} property.Result
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Failure 422 {string} string
// @Failure 502 {string} string
// @Router /comparables [post]
func (a *API) ComparablesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req ComparablesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	startTime := time.Now()
	result, err := a.resolver.Resolve(r.Context(), comps.Request{
		Address: property.Address{
			Line:       req.Address,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
		},
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Details:   req.Details,
		UserID:    req.UserID,
		SessionID: req.SessionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("[API] Comparables for %q: %d found in %v", req.Address, len(result.ComparableProperties), time.Since(startTime))
	writeJSON(w, result)
}

// EventHistoryRequest asks for the events of one property
type EventHistoryRequest struct {
	PropertyID int64  `json:"propertyId"`
	StartDate  string `json:"startDate,omitempty"` // YYYY-MM-DD, default: six months ago
	UserID     string `json:"userId,omitempty"`
}

// EventHistoryHandler returns the sale and rental history of a property
// @Summary Property event history
// @Description Events of one property since the start date, newest first
// @Tags comparables
// @Accept json
// @Produce json
// @Param request body EventHistoryRequest true "Property and start date"
// @Success 200 {array} property.Event
// @Failure 400 {string} string
// @Failure 502 {string} string
// @Router /properties/events [post]
func (a *API) EventHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req EventHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var start time.Time
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			http.Error(w, "startDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start = t
	}

	events, err := a.resolver.EventHistory(r.Context(), req.PropertyID, start, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, events)
}
