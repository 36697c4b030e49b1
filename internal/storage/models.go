package storage

import (
	"encoding/json"
	"time"
)

// ProcessingStatus is the ingestion state of a raw response row.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// RawResponse is a cached provider payload, unique by RequestHash.
type RawResponse struct {
	ID               int64            `json:"id"`
	Endpoint         string           `json:"endpoint"`
	RequestParams    json.RawMessage  `json:"request_params"`
	ResponseBody     json.RawMessage  `json:"-"`
	HTTPStatus       int              `json:"http_status"`
	RequestHash      string           `json:"request_hash"`
	SessionID        string           `json:"session_id"`
	UserID           *string          `json:"user_id,omitempty"`
	TargetPropertyID *int64           `json:"target_property_id,omitempty"`
	Status           ProcessingStatus `json:"processing_status"`
	ErrorMessage     *string          `json:"error_message,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// CandidateSource records why and for whom a property row was written.
type CandidateSource struct {
	UserID       string
	SessionID    string
	SearchType   string // target, comparable, address
	SearchSource string // address_search, ingest
}
