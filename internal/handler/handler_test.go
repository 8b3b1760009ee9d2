package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ebodine/booklend/internal/handler"
	"github.com/ebodine/booklend/internal/repository/sqlite"
	"github.com/ebodine/booklend/internal/service"
)

// newTestServer wires the full stack against a temp SQLite file and returns
// a running test server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	catalog := service.NewCatalogService(db.Books())
	loans := service.NewLoanService(db.Users(), db.Books(), db.Loans())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, catalog, loans, db.Users())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// postJSON sends a JSON POST and decodes the response body into a map.
func postJSON(t *testing.T, url string, payload any) (int, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

// getBody performs a GET and returns the status and raw body.
func getBody(t *testing.T, url string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

// doRequest performs a bodyless request with the given method.
func doRequest(t *testing.T, method, url string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}
