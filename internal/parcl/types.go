package parcl

import (
	"encoding/json"
	"errors"
	"fmt"

	"property-comps/internal/property"
)

// Endpoint names the provider call a raw response came from.
type Endpoint string

const (
	EndpointSearchAddress Endpoint = "search_address"
	EndpointComparables   Endpoint = "search_properties_with_events"
	EndpointEventHistory  Endpoint = "property_event_history"
)

// ErrUnknownEndpoint is returned by DecodePayload for endpoints without a parser.
var ErrUnknownEndpoint = errors.New("parcl: unknown endpoint")

// Payload is one of AddressSearchResponse, ComparablesResponse or EventHistoryResponse.
type Payload interface {
	Endpoint() Endpoint
}

// DecodePayload decodes a cached raw body into the typed response of its endpoint.
func DecodePayload(endpoint string, body []byte) (Payload, error) {
	var p Payload
	switch Endpoint(endpoint) {
	case EndpointSearchAddress:
		p = &AddressSearchResponse{}
	case EndpointComparables:
		p = &ComparablesResponse{}
	case EndpointEventHistory:
		p = &EventHistoryResponse{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}
	if len(body) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", endpoint, err)
	}
	return p, nil
}

type AddressQuery struct {
	Address           string `json:"address"`
	City              string `json:"city"`
	StateAbbreviation string `json:"state_abbreviation"`
	ZipCode           string `json:"zip_code"`
}

type AddressItem struct {
	ParclPropertyID   int64    `json:"parcl_property_id"`
	Address           string   `json:"address"`
	Unit              string   `json:"unit,omitempty"`
	City              string   `json:"city"`
	StateAbbreviation string   `json:"state_abbreviation"`
	ZipCode           string   `json:"zip_code"`
	County            string   `json:"county"`
	PropertyType      string   `json:"property_type"`
	Bedrooms          *float64 `json:"bedrooms"`
	Bathrooms         *float64 `json:"bathrooms"`
	SquareFootage     *float64 `json:"square_footage"`
	YearBuilt         *float64 `json:"year_built"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}

type AddressSearchResponse struct {
	Items []AddressItem `json:"items"`
}

func (*AddressSearchResponse) Endpoint() Endpoint { return EndpointSearchAddress }

type EventItem struct {
	ParclPropertyID     int64            `json:"parcl_property_id,omitempty"`
	EventType           string           `json:"event_type"`
	EventName           string           `json:"event_name"`
	EventDate           string           `json:"event_date"`
	Price               *float64         `json:"price"`
	OwnerOccupiedFlag   property.TriBool `json:"owner_occupied_flag"`
	NewConstructionFlag property.TriBool `json:"new_construction_flag"`
	InvestorFlag        property.TriBool `json:"investor_flag"`
	EntityOwnerName     string           `json:"entity_owner_name,omitempty"`
}

type PropertyMetadata struct {
	Address1      string   `json:"address1"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Zip5          string   `json:"zip5"`
	County        string   `json:"county"`
	PropertyType  string   `json:"property_type"`
	Bedrooms      *float64 `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms"`
	SquareFootage *float64 `json:"square_footage"`
	YearBuilt     *float64 `json:"year_built"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type PropertyWithEvents struct {
	ParclPropertyID  int64            `json:"parcl_property_id"`
	PropertyMetadata PropertyMetadata `json:"property_metadata"`
	Events           []EventItem      `json:"events"`
}

type ComparablesResponse struct {
	Data []PropertyWithEvents `json:"data"`
}

func (*ComparablesResponse) Endpoint() Endpoint { return EndpointComparables }

type EventHistoryResponse struct {
	Items []EventItem `json:"items"`
}

func (*EventHistoryResponse) Endpoint() Endpoint { return EndpointEventHistory }

// property_search request body

type geoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

type propertyFilters struct {
	PropertyTypes          []string `json:"property_types,omitempty"`
	MinBeds                int      `json:"min_beds,omitempty"`
	MaxBeds                int      `json:"max_beds,omitempty"`
	MinBaths               int      `json:"min_baths,omitempty"`
	MaxBaths               int      `json:"max_baths,omitempty"`
	MinSqft                float64  `json:"min_sqft,omitempty"`
	MaxSqft                float64  `json:"max_sqft,omitempty"`
	MinYearBuilt           int      `json:"min_year_built,omitempty"`
	MaxYearBuilt           int      `json:"max_year_built,omitempty"`
	IncludePropertyDetails bool     `json:"include_property_details"`
}

type eventFilters struct {
	EventNames   []string `json:"event_names,omitempty"`
	MinEventDate string   `json:"min_event_date,omitempty"`
	MaxEventDate string   `json:"max_event_date,omitempty"`
}

type PropertySearchRequest struct {
	GeoCoordinates  geoCoordinates  `json:"geo_coordinates"`
	PropertyFilters propertyFilters `json:"property_filters"`
	EventFilters    eventFilters    `json:"event_filters"`
}

type EventHistoryRequest struct {
	ParclPropertyIDs []string `json:"parcl_property_id"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
}
