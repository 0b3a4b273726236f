package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LJTian/NewsPulse/internal/logging"
	"github.com/LJTian/NewsPulse/internal/processor"
	"github.com/LJTian/NewsPulse/internal/storage"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errProvider struct{}

func (errProvider) Snapshot(context.Context) (storage.Snapshot, error) {
	return storage.Snapshot{}, errors.New("enrichment defect")
}

type panicProvider struct{}

func (panicProvider) Snapshot(context.Context) (storage.Snapshot, error) {
	panic("nil map write")
}

func readyStore() *storage.MemoryStore {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStore()
	store.Replace(storage.NewSnapshot([]processor.Article{
		{Source: "NDTV", Title: "Election news", Summary: "s", Topic: processor.TopicPolitics, Timestamp: ts.Add(time.Minute),
			Entities: processor.Entities{States: []string{"delhi"}, People: []string{"Rahul"}}},
		{Source: "The Hindu", Title: "Hospital news", Summary: "s", Topic: processor.TopicHealth, Timestamp: ts,
			Entities: processor.Entities{States: []string{}, People: []string{}}},
	}, ts))
	return store
}

func newTestRouter(p storage.Provider, mw ...gin.HandlerFunc) *gin.Engine {
	r := NewRouter(logging.Discard(), mw...)
	NewServer(p, "scheduled", logging.Discard()).RegisterRoutes(r)
	return r
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeArticles(t *testing.T, w *httptest.ResponseRecorder) []processor.Article {
	t.Helper()
	var out []processor.Article
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not an article array: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestListNewsReturnsArray(t *testing.T) {
	w := doGet(newTestRouter(readyStore()), "/news")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	out := decodeArticles(t, w)
	if len(out) != 2 || out[0].Title != "Election news" {
		t.Fatalf("unexpected articles: %+v", out)
	}
	if len(out[0].Entities.People) != 1 || out[0].Entities.People[0] != "Rahul" {
		t.Fatalf("entities lost in transport: %+v", out[0].Entities)
	}
}

func TestTopicFilterIsCaseInsensitive(t *testing.T) {
	r := newTestRouter(readyStore())
	upper := doGet(r, "/news/topic/POLITICS")
	lower := doGet(r, "/news/topic/politics")
	if upper.Body.String() != lower.Body.String() {
		t.Fatalf("case variants differ: %s vs %s", upper.Body.String(), lower.Body.String())
	}
	if out := decodeArticles(t, lower); len(out) != 1 || out[0].Topic != processor.TopicPolitics {
		t.Fatalf("unexpected topic result: %+v", out)
	}
}

func TestSourceFilter(t *testing.T) {
	r := newTestRouter(readyStore())
	w := doGet(r, "/news/source/the%20hindu")
	out := decodeArticles(t, w)
	if len(out) != 1 || out[0].Source != "The Hindu" {
		t.Fatalf("unexpected source result: %+v", out)
	}
}

func TestFilterWithoutMatchesReturnsEmptyArray(t *testing.T) {
	w := doGet(newTestRouter(readyStore()), "/news/topic/sports")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestSentinelPassesThroughAllRoutes(t *testing.T) {
	r := newTestRouter(storage.NewMemoryStore())
	for _, path := range []string{"/news", "/news/topic/politics", "/news/source/NDTV"} {
		w := doGet(r, path)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", path, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: expected sentinel object, got %s", path, w.Body.String())
		}
		if body["message"] == "" || body["status"] != string(storage.StatusPending) {
			t.Fatalf("%s: unexpected sentinel: %v", path, body)
		}
	}
}

func TestEmptySnapshotSentinel(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Replace(storage.NewSnapshot(nil, time.Now()))

	w := doGet(newTestRouter(store), "/news")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected sentinel object, got %s", w.Body.String())
	}
	if body["status"] != string(storage.StatusEmpty) {
		t.Fatalf("unexpected sentinel: %v", body)
	}
}

func TestProviderErrorIs500(t *testing.T) {
	w := doGet(newTestRouter(errProvider{}), "/news/source/NDTV")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Error fetching news by source" || body["error"] != "enrichment defect" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestPanicIs500(t *testing.T) {
	w := doGet(newTestRouter(panicProvider{}), "/news")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] == "" || body["error"] != "nil map write" {
		t.Fatalf("unexpected panic body: %v", body)
	}
}

func TestHealthReportsSnapshot(t *testing.T) {
	w := doGet(newTestRouter(readyStore()), "/health")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["snapshot"] != "ready" || body["articles"] != float64(2) {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newTestRouter(readyStore(), RateLimitMiddleware(0.001, 1))
	if w := doGet(r, "/news"); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}
	if w := doGet(r, "/news"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if w := doGet(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("health should bypass limiter, got %d", w.Code)
	}
}

func TestBasicAuthMiddleware(t *testing.T) {
	r := newTestRouter(readyStore(), BasicAuthMiddleware("user", "pass"))

	if w := doGet(r, "/news"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	req.SetBasicAuth("user", "pass")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authorized status = %d, want 200", w.Code)
	}

	if w := doGet(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("health should skip auth, got %d", w.Code)
	}
}
