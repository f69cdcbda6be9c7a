package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mashley00/venue-webhook/internal/database"
)

type fakeStorage struct {
	markets     []database.MarketInfo
	shouldError bool
}

func (f *fakeStorage) InsertEvents(ctx context.Context, events []database.Event) error { return nil }

func (f *fakeStorage) MarketEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error) {
	return nil, nil
}

func (f *fakeStorage) Markets(ctx context.Context) ([]database.MarketInfo, error) {
	if f.shouldError {
		return nil, fmt.Errorf("store unavailable")
	}
	return f.markets, nil
}

func (f *fakeStorage) Stats(ctx context.Context) (*database.EventStats, error) { return nil, nil }

func (f *fakeStorage) Close() error { return nil }

func newTestServer(t *testing.T, storage *fakeStorage) *Server {
	t.Helper()
	server, err := New(storage, TemplatesFS, StaticFS)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return server
}

func TestIndexHandler(t *testing.T) {
	server := newTestServer(t, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	server.IndexHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{`id="vor-form"`, `name="topic"`, `name="city"`, `name="state"`, `id="report-output"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %s", want)
		}
	}
}

func TestIndexHandlerUnknownPath(t *testing.T) {
	server := newTestServer(t, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	rr := httptest.NewRecorder()
	server.IndexHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestMarketsHandler(t *testing.T) {
	server := newTestServer(t, &fakeStorage{markets: []database.MarketInfo{
		{Topic: "TAXES_IN_RETIREMENT_567", City: "Tampa", State: "FL", EventCount: 12, VenueCount: 3},
	}})

	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	rr := httptest.NewRecorder()
	server.MarketsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Tampa") {
		t.Error("markets page missing market row")
	}
}

func TestMarketsHandlerStorageError(t *testing.T) {
	server := newTestServer(t, &fakeStorage{shouldError: true})

	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	rr := httptest.NewRecorder()
	server.MarketsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Failed to load markets") {
		t.Error("markets page missing error message")
	}
}

func TestStaticHandler(t *testing.T) {
	server := newTestServer(t, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/static/app.js", nil)
	rr := httptest.NewRecorder()
	server.StaticHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("content type = %q", ct)
	}
}

func TestStaticHandlerTraversal(t *testing.T) {
	server := newTestServer(t, &fakeStorage{})

	req := httptest.NewRequest(http.MethodGet, "/static/"+"%2e%2e/embed.go", nil)
	req.URL.Path = "/static/../embed.go"
	rr := httptest.NewRecorder()
	server.StaticHandler(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}
