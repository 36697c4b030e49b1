package api

import (
	"net/http"
	"strconv"
)

// RawResponseHandler returns the ingestion state of a cached provider response
// @Summary Raw response status
// @Description Metadata and processing status of one cached provider response
// @Tags raw-responses
// @Produce json
// @Param id path int true "Raw response ID"
// @Success 200 {object} storage.RawResponse
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /raw-responses/{id} [get]
func (a *API) RawResponseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	row, err := a.store.GetRawResponse(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, row)
}

// StatsHandler returns storage statistics
// @Summary Get ingestion statistics
// @Description Stored property count and raw responses per processing status
// @Tags raw-responses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats [get]
func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := map[string]interface{}{
		"total_properties": 0,
		"raw_responses":    map[string]int{},
	}

	if n, err := a.store.CountProperties(r.Context()); err == nil {
		stats["total_properties"] = n
	}

	if counts, err := a.store.CountRawResponsesByStatus(r.Context()); err == nil {
		byStatus := make(map[string]int, len(counts))
		for status, n := range counts {
			byStatus[string(status)] = n
		}
		stats["raw_responses"] = byStatus
	}

	writeJSON(w, stats)
}
