package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/tomz197/balloonpop/internal/config"
	"github.com/tomz197/balloonpop/internal/store"
)

type brokenSource struct{}

func (brokenSource) All() (map[string]string, error) { return nil, errors.New("disk gone") }

func testRouter(t *testing.T, scores scoreSource) http.Handler {
	t.Helper()
	settings := config.Default()
	settings.DisplayHost = "pop.example.com"
	settings.SSHPort = "2222"
	return newRouter(settings, scores, log.New(io.Discard))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexShowsConnectHintAndScores(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(store.UserKey("alice"), "320")
	_ = kv.Set(store.HighScoreKey, "90")

	rec := get(t, testRouter(t, kv), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"ssh -p 2222 pop.example.com", "alice", "320", "local"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Index(body, "alice") > strings.Index(body, "local") {
		t.Errorf("scores not sorted best first")
	}
}

func TestIndexWithoutScores(t *testing.T) {
	rec := get(t, testRouter(t, store.NewMemory()), "/")
	if !strings.Contains(rec.Body.String(), "No scores yet") {
		t.Fatalf("empty state missing")
	}
}

func TestHighScoresAPI(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(store.UserKey("bob"), "75")

	rec := get(t, testRouter(t, kv), "/api/highscores")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var entries []store.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0] != (store.Entry{Player: "bob", Score: 75}) {
		t.Fatalf("entries = %+v", entries)
	}

	rec = get(t, testRouter(t, store.NewMemory()), "/api/highscores")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list = %q, want []", rec.Body.String())
	}
}

func TestHighScoresAPIStoreFailure(t *testing.T) {
	rec := get(t, testRouter(t, brokenSource{}), "/api/highscores")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestOnlyGet(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t, store.NewMemory()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/highscores", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rec.Code)
	}
}
