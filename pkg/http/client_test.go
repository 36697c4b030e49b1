package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" || r.Header.Get("X-Key") != "k" {
			t.Errorf("request %s %v", r.Method, r.Header)
		}
		b, _ := io.ReadAll(r.Body)
		w.Write(b)
	}))
	defer srv.Close()

	c := NewClient(time.Second, 0, 0)
	resp, err := c.PostJSON(context.Background(), srv.URL, map[string]string{"X-Key": "k"}, map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	body, err := ReadBody(resp, 4)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"a"` {
		t.Fatalf("body = %q, want the first 4 bytes", body)
	}
}

func TestRateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(time.Second, 0.001, 1)
	ctx := context.Background()
	resp, err := c.PostJSON(ctx, srv.URL, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	// the single token is spent; the next call cannot get one before the deadline
	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := c.PostJSON(ctx, srv.URL, nil, nil); err == nil {
		t.Fatal("second request was not rate limited")
	} else if errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected cancel: %v", err)
	}
}
