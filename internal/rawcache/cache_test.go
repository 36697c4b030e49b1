package rawcache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"property-comps/internal/parcl"
	"property-comps/internal/storage"
)

type recordingScheduler struct {
	mu   sync.Mutex
	jobs []int64
}

func (s *recordingScheduler) Enqueue(id int64, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, id)
}

type panickingScheduler struct{}

func (panickingScheduler) Enqueue(int64, string) { panic("send on closed channel") }

type brokenStore struct{}

func (brokenStore) UpsertRawResponse(context.Context, *storage.RawResponse) (int64, error) {
	return 0, errors.New("db down")
}

func (brokenStore) RawResponseExists(context.Context, string) (bool, error) {
	return false, errors.New("db down")
}

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

func TestHashDeterministic(t *testing.T) {
	params := map[string]any{"radius": 1.0, "beds": 3}
	a, err := Hash("search_properties_with_events", params)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Hash("search_properties_with_events", map[string]any{"beds": 3, "radius": 1.0})
	if a != b {
		t.Fatal("hash depends on map ordering")
	}
	c, _ := Hash("search_address", params)
	if a == c {
		t.Fatal("endpoint is not part of the hash")
	}
}

func TestSaveDeduplicates(t *testing.T) {
	db := openStore(t)
	sched := &recordingScheduler{}
	cache := New(db, sched)
	ctx := context.Background()

	params := map[string]any{"radius": 1.0, "min_beds": 3}
	id1, err := cache.Save(ctx, "search_properties_with_events", params, []byte(`{"data":[]}`), 200, Meta{SessionID: "a"})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := cache.Save(ctx, "search_properties_with_events", params, []byte(`{"data":[]}`), 200, Meta{SessionID: "b", UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("identical requests got ids %d and %d", id1, id2)
	}

	id3, err := cache.Save(ctx, "search_properties_with_events", map[string]any{"radius": 1.0, "min_beds": 2}, nil, 200, Meta{SessionID: "c"})
	if err != nil {
		t.Fatal(err)
	}
	if id3 == id1 {
		t.Fatal("different parameters shared a row")
	}

	if len(sched.jobs) != 3 {
		t.Fatalf("scheduled %d jobs, want 3", len(sched.jobs))
	}

	hash, _ := Hash("search_properties_with_events", params)
	if !cache.Exists(ctx, hash) {
		t.Fatal("saved payload not found by hash")
	}
}

func TestSaveExchange(t *testing.T) {
	db := openStore(t)
	cache := New(db, nil)
	ex := &parcl.Exchange{Endpoint: parcl.EndpointSearchAddress, Params: []string{"1 main st"}, Body: []byte(`{"items":[]}`), Status: 200}

	id, err := cache.SaveExchange(context.Background(), ex, Meta{SessionID: "s", TargetPropertyID: 5})
	if err != nil {
		t.Fatal(err)
	}
	row, err := db.GetRawResponse(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if row.Endpoint != "search_address" || row.TargetPropertyID == nil || *row.TargetPropertyID != 5 {
		t.Fatalf("row = %+v", row)
	}
}

func TestSchedulingFailureIsSwallowed(t *testing.T) {
	cache := New(openStore(t), panickingScheduler{})
	if _, err := cache.Save(context.Background(), "search_address", []int{1}, nil, 200, Meta{SessionID: "s"}); err != nil {
		t.Fatalf("scheduling failure surfaced: %v", err)
	}
}

func TestExistsDegradesToFalse(t *testing.T) {
	cache := New(brokenStore{}, nil)
	if cache.Exists(context.Background(), "abc") {
		t.Fatal("lookup error should read as not cached")
	}
}
