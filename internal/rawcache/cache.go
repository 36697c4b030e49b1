package rawcache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"

	"property-comps/internal/parcl"
	"property-comps/internal/storage"
)

// Store is the slice of storage the cache writes through.
type Store interface {
	UpsertRawResponse(ctx context.Context, r *storage.RawResponse) (int64, error)
	RawResponseExists(ctx context.Context, hash string) (bool, error)
}

// Scheduler hands a saved row to background ingestion. It must not block.
type Scheduler interface {
	Enqueue(rawResponseID int64, sessionID string)
}

// Meta is the request context stored alongside a payload.
type Meta struct {
	SessionID        string
	UserID           string
	TargetPropertyID int64
}

// Cache stores raw provider payloads deduplicated by a hash of endpoint and parameters.
type Cache struct {
	store     Store
	scheduler Scheduler
}

func New(store Store, scheduler Scheduler) *Cache {
	return &Cache{store: store, scheduler: scheduler}
}

// Hash is the request hash: sha256 over "endpoint:" followed by the JSON encoding of params.
func Hash(endpoint string, params any) (string, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}
	return hashBytes(endpoint, b), nil
}

func hashBytes(endpoint string, params []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{':'})
	h.Write(params)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Save upserts the payload and schedules it for ingestion. It returns the row id,
// which is stable across saves of the same endpoint and parameters.
func (c *Cache) Save(ctx context.Context, endpoint string, params any, payload []byte, status int, meta Meta) (int64, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("encode params: %w", err)
	}
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	row := &storage.RawResponse{
		Endpoint:      endpoint,
		RequestParams: paramsJSON,
		ResponseBody:  payload,
		HTTPStatus:    status,
		RequestHash:   hashBytes(endpoint, paramsJSON),
		SessionID:     meta.SessionID,
	}
	if meta.UserID != "" {
		row.UserID = &meta.UserID
	}
	if meta.TargetPropertyID != 0 {
		row.TargetPropertyID = &meta.TargetPropertyID
	}

	id, err := c.store.UpsertRawResponse(ctx, row)
	if err != nil {
		return 0, err
	}
	c.schedule(id, meta.SessionID)
	return id, nil
}

// SaveExchange saves one provider call.
func (c *Cache) SaveExchange(ctx context.Context, ex *parcl.Exchange, meta Meta) (int64, error) {
	if ex == nil {
		return 0, fmt.Errorf("rawcache: nil exchange")
	}
	return c.Save(ctx, string(ex.Endpoint), ex.Params, ex.Body, ex.Status, meta)
}

func (c *Cache) schedule(id int64, sessionID string) {
	if c.scheduler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[RawCache] scheduling raw response %d failed: %v", id, r)
		}
	}()
	c.scheduler.Enqueue(id, sessionID)
}

// Exists probes for a cached payload. Lookup errors count as "not cached".
func (c *Cache) Exists(ctx context.Context, hash string) bool {
	ok, err := c.store.RawResponseExists(ctx, hash)
	if err != nil {
		log.Printf("[RawCache] exists check for %s failed: %v", hash, err)
		return false
	}
	return ok
}
