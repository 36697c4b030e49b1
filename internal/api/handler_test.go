package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"property-comps/internal/comps"
	"property-comps/internal/property"
	"property-comps/internal/storage"
)

type fakeResolver struct {
	err      error
	got      comps.Request
	gotStart time.Time
	gotID    int64
	userID   string
	result   *property.Result
	events   []property.Event
}

func (f *fakeResolver) Resolve(_ context.Context, req comps.Request) (*property.Result, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeResolver) EventHistory(_ context.Context, id int64, start time.Time, userID string) ([]property.Event, error) {
	f.gotID, f.gotStart, f.userID = id, start, userID
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

type fakeStore struct {
	rows map[int64]*storage.RawResponse
}

func (s fakeStore) GetRawResponse(_ context.Context, id int64) (*storage.RawResponse, error) {
	if r, ok := s.rows[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("raw response %d: %w", id, storage.ErrNotFound)
}

func (s fakeStore) CountProperties(context.Context) (int, error) { return 7, nil }

func (s fakeStore) CountRawResponsesByStatus(context.Context) (map[storage.ProcessingStatus]int, error) {
	return map[storage.ProcessingStatus]int{storage.StatusCompleted: 3, storage.StatusFailed: 1}, nil
}

func serve(t *testing.T, res Resolver, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewRouter(NewAPI(res, fakeStore{rows: map[int64]*storage.RawResponse{
		4: {ID: 4, Endpoint: "search_address", Status: storage.StatusCompleted},
	}}))
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestComparablesHandler(t *testing.T) {
	res := &fakeResolver{result: &property.Result{
		SessionID:            "s1",
		TargetProperty:       property.Property{ID: 1},
		ComparableProperties: []property.Comparable{{ID: "2-sale"}},
		AllProperties:        []property.AnnotatedProperty{},
		RadiusUsed:           1,
		MonthsUsed:           12,
	}}
	body := `{"address":"1 Main St","postalCode":"75001","latitude":32.7,"longitude":-96.8,"propertyDetails":{"bedrooms":4},"userId":"u1"}`

	rec := serve(t, res, http.MethodPost, "/api/comparables", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out property.Result
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.ComparableProperties) != 1 || out.ComparableProperties[0].ID != "2-sale" || out.MonthsUsed != 12 {
		t.Fatalf("result = %+v", out)
	}
	if res.got.Address.PostalCode != "75001" || *res.got.Latitude != 32.7 || res.got.Details.Bedrooms != 4 || res.got.UserID != "u1" {
		t.Fatalf("request = %+v", res.got)
	}
}

func TestComparablesHandlerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", property.InvalidInputf("address is required"), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: 1 main st", property.ErrNotFound), http.StatusNotFound},
		{"validation", &property.ValidationError{Message: "bad radius"}, http.StatusUnprocessableEntity},
		{"upstream", &property.UpstreamError{Status: 500}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeResolver{err: tt.err}, http.MethodPost, "/api/comparables", `{"address":"x"}`)
			if rec.Code != tt.want {
				t.Fatalf("status %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if rec := serve(t, &fakeResolver{}, http.MethodPost, "/api/comparables", `{`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad JSON status %d", rec.Code)
	}
	if rec := serve(t, &fakeResolver{}, http.MethodGet, "/api/comparables", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status %d", rec.Code)
	}
}

func TestEventHistoryHandler(t *testing.T) {
	res := &fakeResolver{events: []property.Event{{PropertyID: 9, Type: property.EventTypeSale}}}

	rec := serve(t, res, http.MethodPost, "/api/properties/events", `{"propertyId":9,"startDate":"2025-01-01","userId":"u"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if res.gotID != 9 || !res.gotStart.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) || res.userID != "u" {
		t.Fatalf("id=%d start=%v user=%s", res.gotID, res.gotStart, res.userID)
	}

	if rec := serve(t, res, http.MethodPost, "/api/properties/events", `{"propertyId":9,"startDate":"01/01/2025"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status %d", rec.Code)
	}
}

func TestRawResponseHandler(t *testing.T) {
	rec := serve(t, &fakeResolver{}, http.MethodGet, "/api/raw-responses/4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var row storage.RawResponse
	if err := json.NewDecoder(rec.Body).Decode(&row); err != nil {
		t.Fatal(err)
	}
	if row.ID != 4 || row.Status != storage.StatusCompleted {
		t.Fatalf("row = %+v", row)
	}

	if rec := serve(t, &fakeResolver{}, http.MethodGet, "/api/raw-responses/5", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing row status %d", rec.Code)
	}
	if rec := serve(t, &fakeResolver{}, http.MethodGet, "/api/raw-responses/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status %d", rec.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	rec := serve(t, &fakeResolver{}, http.MethodGet, "/api/stats", "")
	var out struct {
		TotalProperties int            `json:"total_properties"`
		RawResponses    map[string]int `json:"raw_responses"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.TotalProperties != 7 || out.RawResponses["failed"] != 1 || out.RawResponses["completed"] != 3 {
		t.Fatalf("stats = %+v", out)
	}
}
