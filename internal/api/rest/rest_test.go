package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/bookmarks"
	"github.com/draco-astrodb/astrodb/internal/catfmt"
	"github.com/draco-astrodb/astrodb/internal/eventbus"
)

func sealedTestServer(t *testing.T) *Server {
	t.Helper()

	builder := astrodb.NewBuilder(eventbus.NewInMemoryBus())
	n, err := builder.LoadStarsBinary([]catfmt.BinaryStarRecord{
		{CatalogNumber: 1, X: 0, Y: 0, Z: 0, AbsMagQ8: 0, SpectralCode: catfmt.PackSpectralCode(0, 6, 2, 6)},
	})
	if err != nil || n != 1 {
		t.Fatalf("LoadStarsBinary() = (%d, %v)", n, err)
	}

	db, err := builder.Seal(context.Background())
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	s := NewServer(Config{Debug: true}, eventbus.NewInMemoryBus(), bookmarks.NewInMemoryStore())
	s.SetDatabase(db)
	return s
}

func TestHealthCheck(t *testing.T) {
	s := sealedTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestHealthCheckBeforeSeal(t *testing.T) {
	s := NewServer(Config{Debug: true}, eventbus.NewInMemoryBus(), bookmarks.NewInMemoryStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestGetObjectByNumber(t *testing.T) {
	s := sealedTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/1", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got objectView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Kind != "star" || got.Number != 1 {
		t.Fatalf("got = %+v", got)
	}
}

func TestGetObjectByNumberNotFound(t *testing.T) {
	s := sealedTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/999", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFindVisible(t *testing.T) {
	s := sealedTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/visible?obs_z=10&limit_mag=30", nil)
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Count   int          `json:"count"`
		Objects []objectView `json:"objects"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("count = %d, want 1: %+v", body.Count, body)
	}
}

func TestBookmarkRoundTrip(t *testing.T) {
	s := sealedTestServer(t)

	body := `{"position":{"X":1,"Y":2,"Z":3},"orientation":{"W":1},"fov_y":0.8,"aspect":1.5,"limit_mag":8}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookmarks/home", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/bookmarks/home", nil)
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/bookmarks", nil)
	s.Handler().ServeHTTP(rec, req)
	var list struct {
		Bookmarks []string `json:"bookmarks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(list.Bookmarks) != 1 || list.Bookmarks[0] != "home" {
		t.Fatalf("bookmarks = %v", list.Bookmarks)
	}
}
