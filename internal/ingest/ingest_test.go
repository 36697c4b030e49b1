package ingest

import (
	"context"
	"strings"
	"testing"

	"property-comps/internal/storage"
)

const comparablesBody = `{"data":[
 {"parcl_property_id":11,
  "property_metadata":{"address1":"10 OAK ST","city":"DALLAS","state":"TX","zip5":"75001","property_type":"SINGLE_FAMILY","bedrooms":3,"bathrooms":2,"square_footage":1500,"year_built":1990,"latitude":32.78,"longitude":-96.80},
  "events":[
   {"event_type":"SALE","event_name":"SOLD","event_date":"2025-03-01","price":300000,"owner_occupied_flag":1},
   {"event_type":"RENTAL","event_name":"LISTED_RENT","event_date":"2025-05-01","price":2100}
  ]}
]}`

func openStore(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(storage.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(db.Close)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return db
}

func saveRaw(t *testing.T, db *storage.DB, endpoint, hash, body string) int64 {
	t.Helper()
	id, err := db.UpsertRawResponse(context.Background(), &storage.RawResponse{
		Endpoint:      endpoint,
		RequestParams: []byte(`{}`),
		ResponseBody:  []byte(body),
		HTTPStatus:    200,
		RequestHash:   hash,
		SessionID:     "s1",
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func status(t *testing.T, db *storage.DB, id int64) *storage.RawResponse {
	t.Helper()
	row, err := db.GetRawResponse(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return row
}

func TestProcessIsIdempotent(t *testing.T) {
	db := openStore(t)
	proc := NewProcessor(db)
	ctx := context.Background()
	id := saveRaw(t, db, "search_properties_with_events", "h1", comparablesBody)

	stats, err := proc.Process(ctx, id, "")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Properties != 1 || stats.Events != 2 {
		t.Fatalf("first pass stats = %+v", stats)
	}

	stats, err = proc.Process(ctx, id, "")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Events != 0 || stats.Duplicates != 2 {
		t.Fatalf("second pass stats = %+v", stats)
	}

	events, err := db.ListEvents(ctx, 11)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events after reprocessing", len(events))
	}
	if n, _ := db.CountProperties(ctx); n != 1 {
		t.Fatalf("got %d properties", n)
	}
	if row := status(t, db, id); row.Status != storage.StatusCompleted {
		t.Fatalf("status = %s", row.Status)
	}
}

func TestProcessAddressAndHistory(t *testing.T) {
	db := openStore(t)
	proc := NewProcessor(db)
	ctx := context.Background()

	addr := saveRaw(t, db, "search_address", "a1",
		`{"items":[{"parcl_property_id":5,"address":"1 MAIN ST","city":"DALLAS","state_abbreviation":"TX","zip_code":"75001","bedrooms":3}]}`)
	hist := saveRaw(t, db, "property_event_history", "e1",
		`{"items":[{"parcl_property_id":5,"event_type":"SALE","event_name":"SOLD","event_date":"2024-01-15","price":200000}]}`)

	if _, err := proc.Process(ctx, addr, "s1"); err != nil {
		t.Fatal(err)
	}
	stats, err := proc.Process(ctx, hist, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Events != 1 || stats.Properties != 0 {
		t.Fatalf("history stats = %+v", stats)
	}
	if n, _ := db.CountProperties(ctx); n != 1 {
		t.Fatalf("got %d properties", n)
	}
}

func TestProcessMarksFailure(t *testing.T) {
	db := openStore(t)
	id := saveRaw(t, db, "search_properties_with_events", "bad", `{"data":"not a list"}`)

	if _, err := NewProcessor(db).Process(context.Background(), id, ""); err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
	row := status(t, db, id)
	if row.Status != storage.StatusFailed || row.ErrorMessage == nil || *row.ErrorMessage == "" {
		t.Fatalf("row = %+v", row)
	}
}

func TestProcessUnknownEndpointCompletes(t *testing.T) {
	db := openStore(t)
	id := saveRaw(t, db, "market_metrics", "m1", `{"whatever":true}`)

	if _, err := NewProcessor(db).Process(context.Background(), id, ""); err != nil {
		t.Fatal(err)
	}
	if row := status(t, db, id); row.Status != storage.StatusCompleted {
		t.Fatalf("status = %s", row.Status)
	}
}

func TestQueueDrainsOnClose(t *testing.T) {
	db := openStore(t)
	q := NewQueue(NewProcessor(db), db, 10, 2)
	q.Start(context.Background())

	id := saveRaw(t, db, "search_properties_with_events", "h1", comparablesBody)
	q.Enqueue(id, "s1")
	if err := q.Close(); err != nil {
		t.Fatal(err)
	}
	if row := status(t, db, id); row.Status != storage.StatusCompleted {
		t.Fatalf("status = %s", row.Status)
	}

	// after close enqueue is a logged no-op
	q.Enqueue(id, "s1")
}

func TestQueueFullDropsJob(t *testing.T) {
	db := openStore(t)
	q := NewQueue(NewProcessor(db), db, 1, 1)

	first := saveRaw(t, db, "search_address", "a1", `{"items":[]}`)
	second := saveRaw(t, db, "search_address", "a2", `{"items":[]}`)
	q.Enqueue(first, "s1")
	q.Enqueue(second, "s1")

	row := status(t, db, second)
	if row.Status != storage.StatusFailed || row.ErrorMessage == nil || !strings.Contains(*row.ErrorMessage, "queue full") {
		t.Fatalf("dropped row = %+v", row)
	}
	if row := status(t, db, first); row.Status != storage.StatusPending {
		t.Fatalf("queued row status = %s", row.Status)
	}
	if err := q.Close(); err != nil {
		t.Fatal(err)
	}
}
