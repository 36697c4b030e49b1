package parcl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	phttp "property-comps/pkg/http"

	"property-comps/internal/property"
)

const (
	DefaultBaseURL = "https://api.parcllabs.com"

	searchAddressPath  = "/v1/property/search_address"
	propertySearchPath = "/v2/property_search"
	eventHistoryPath   = "/v1/property/event_history"

	maxBodyBytes = 32 << 20
)

// Exchange is one provider call as it goes into the raw response cache.
type Exchange struct {
	Endpoint Endpoint
	Params   any
	Body     []byte
	Status   int
}

// Client talks to the Parcl Labs property API.
//
// A 404 is reported as an empty result with status 200, a 422 as a
// *property.ValidationError and every other failure as a *property.UpstreamError.
type Client struct {
	baseURL string
	apiKey  string
	http    *phttp.Client
}

func NewClient(baseURL, apiKey string, hc *phttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
	}
}

// SearchAddress resolves a street address into zero or more properties.
func (c *Client) SearchAddress(ctx context.Context, addr property.Address) (*AddressSearchResponse, *Exchange, error) {
	params := []AddressQuery{{
		Address:           strings.TrimSpace(addr.Line),
		City:              strings.TrimSpace(addr.City),
		StateAbbreviation: strings.ToUpper(strings.TrimSpace(addr.State)),
		ZipCode:           strings.TrimSpace(addr.PostalCode),
	}}
	out := &AddressSearchResponse{Items: []AddressItem{}}
	ex, err := c.post(ctx, EndpointSearchAddress, searchAddressPath, params, out, `{"items":[]}`)
	return out, ex, err
}

// SearchComparables runs a radius search returning properties with their events.
func (c *Client) SearchComparables(ctx context.Context, crit property.SearchCriteria) (*ComparablesResponse, *Exchange, error) {
	params := NewPropertySearchRequest(crit)
	out := &ComparablesResponse{Data: []PropertyWithEvents{}}
	ex, err := c.post(ctx, EndpointComparables, propertySearchPath, params, out, `{"data":[]}`)
	return out, ex, err
}

// EventHistory returns the events of the given properties between start and end.
// A zero end leaves the window open.
func (c *Client) EventHistory(ctx context.Context, ids []int64, start, end time.Time) (*EventHistoryResponse, *Exchange, error) {
	params := EventHistoryRequest{ParclPropertyIDs: make([]string, 0, len(ids))}
	for _, id := range ids {
		params.ParclPropertyIDs = append(params.ParclPropertyIDs, strconv.FormatInt(id, 10))
	}
	if !start.IsZero() {
		params.StartDate = start.Format("2006-01-02")
	}
	if !end.IsZero() {
		params.EndDate = end.Format("2006-01-02")
	}
	out := &EventHistoryResponse{Items: []EventItem{}}
	ex, err := c.post(ctx, EndpointEventHistory, eventHistoryPath, params, out, `{"items":[]}`)
	return out, ex, err
}

// NewPropertySearchRequest maps search criteria onto the property_search body.
func NewPropertySearchRequest(crit property.SearchCriteria) PropertySearchRequest {
	req := PropertySearchRequest{
		GeoCoordinates: geoCoordinates{
			Latitude:  crit.Latitude,
			Longitude: crit.Longitude,
			Radius:    crit.RadiusMiles,
		},
		PropertyFilters: propertyFilters{
			PropertyTypes:          crit.PropertyTypes,
			MinBeds:                crit.Beds.Min,
			MaxBeds:                crit.Beds.Max,
			MinBaths:               crit.Baths.Min,
			MaxBaths:               crit.Baths.Max,
			MinSqft:                crit.SquareFeet.Min,
			MaxSqft:                crit.SquareFeet.Max,
			MinYearBuilt:           crit.YearBuilt.Min,
			MaxYearBuilt:           crit.YearBuilt.Max,
			IncludePropertyDetails: true,
		},
		EventFilters: eventFilters{
			EventNames: crit.EventNames,
		},
	}
	if !crit.MinEventDate.IsZero() {
		req.EventFilters.MinEventDate = crit.MinEventDate.Format("2006-01-02")
	}
	if !crit.MaxEventDate.IsZero() {
		req.EventFilters.MaxEventDate = crit.MaxEventDate.Format("2006-01-02")
	}
	return req
}

func (c *Client) post(ctx context.Context, endpoint Endpoint, path string, params, out any, empty string) (*Exchange, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = c.apiKey
	}
	resp, err := c.http.PostJSON(ctx, c.baseURL+path, headers, params)
	if err != nil {
		return nil, &property.UpstreamError{Err: fmt.Errorf("%s: %w", endpoint, err)}
	}
	body, err := phttp.ReadBody(resp, maxBodyBytes)
	if err != nil {
		return nil, &property.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("%s: read body: %w", endpoint, err)}
	}

	ex := &Exchange{Endpoint: endpoint, Params: params, Body: body, Status: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		ex.Body = []byte(empty)
		ex.Status = http.StatusOK
		return ex, nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return ex, &property.ValidationError{Message: providerMessage(body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return ex, &property.UpstreamError{Status: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	if len(body) == 0 {
		return ex, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ex, &property.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("%s: decode: %w", endpoint, err)}
	}
	return ex, nil
}

// providerMessage pulls the human readable message out of an error body.
func providerMessage(body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		for _, k := range []string{"detail", "message", "error"} {
			switch v := m[k].(type) {
			case string:
				if v != "" {
					return v
				}
			case nil:
			default:
				b, _ := json.Marshal(v)
				return string(b)
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), 512)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
