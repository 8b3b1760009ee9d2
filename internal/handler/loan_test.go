package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestHandleListLoansEmpty(t *testing.T) {
	srv := newTestServer(t)

	status, body := getBody(t, srv.URL+"/request")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var msg map[string]string
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg["message"] != "No data" {
		t.Fatalf("expected No data message, got %q", body)
	}
}

func TestHandleRequest_InvalidEmail(t *testing.T) {
	srv := newTestServer(t)
	getBody(t, srv.URL+"/add_books")

	status, resp := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "bad", "title": "Game",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if resp["message"] != "Please enter email in correct format" {
		t.Fatalf("unexpected response: %v", resp)
	}

	// No user row may be created for a rejected email.
	_, body := getBody(t, srv.URL+"/users")
	var users []map[string]any
	if err := json.Unmarshal(body, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users, got %d", len(users))
	}
}

func TestHandleRequest_UnknownBook(t *testing.T) {
	srv := newTestServer(t)
	getBody(t, srv.URL+"/add_books")

	status, resp := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "a@b.com", "title": "Nonexistent",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if resp["message"] != "No such book" {
		t.Fatalf("unexpected response: %v", resp)
	}

	status, body := getBody(t, srv.URL+"/request")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var msg map[string]string
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg["message"] != "No data" {
		t.Fatalf("expected no loans, got %q", body)
	}
}

func TestHandleRequest_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	status, resp := postJSON(t, srv.URL+"/request", map[string]string{"email": "a@b.com"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if resp["message"] != "email and title are required" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestHandleRequest_CheckoutWorkflow(t *testing.T) {
	srv := newTestServer(t)
	getBody(t, srv.URL+"/add_books")

	// First checkout succeeds.
	status, first := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "a@b.com", "title": "Game",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if first["available"] != true {
		t.Fatalf("expected available=true, got %v", first)
	}
	if first["title"] != "Game" {
		t.Fatalf("expected title Game, got %v", first["title"])
	}
	if first["timestamp"] == "" || first["timestamp"] == nil {
		t.Fatalf("expected a timestamp, got %v", first)
	}

	// Second checkout of the same title reports unavailable with the
	// original loan's id and timestamp, and creates no new row.
	status, second := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "c@d.com", "title": "Game",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if second["available"] != false {
		t.Fatalf("expected available=false, got %v", second)
	}
	if second["id"] != first["id"] {
		t.Fatalf("expected loan id %v, got %v", first["id"], second["id"])
	}
	if second["timestamp"] != first["timestamp"] {
		t.Fatalf("expected timestamp %v, got %v", first["timestamp"], second["timestamp"])
	}

	_, body := getBody(t, srv.URL+"/request")
	var loans []map[string]any
	if err := json.Unmarshal(body, &loans); err != nil {
		t.Fatalf("decode loans: %v", err)
	}
	if len(loans) != 1 {
		t.Fatalf("expected 1 loan, got %d", len(loans))
	}
	if loans[0]["return_date"] != nil {
		t.Fatalf("expected null return_date, got %v", loans[0]["return_date"])
	}
}

func TestHandleGetLoan(t *testing.T) {
	srv := newTestServer(t)
	getBody(t, srv.URL+"/add_books")

	_, created := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "a@b.com", "title": "House",
	})
	id := int64(created["id"].(float64))

	status, body := getBody(t, fmt.Sprintf("%s/request/%d", srv.URL, id))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var loan map[string]any
	if err := json.Unmarshal(body, &loan); err != nil {
		t.Fatalf("decode loan: %v", err)
	}
	if int64(loan["id"].(float64)) != id {
		t.Fatalf("expected id %d, got %v", id, loan["id"])
	}
	if loan["borrower_id"] == nil || loan["book_id"] == nil {
		t.Fatalf("expected raw foreign keys, got %v", loan)
	}
}

func TestHandleGetLoan_NotFound(t *testing.T) {
	srv := newTestServer(t)

	status, body := getBody(t, srv.URL+"/request/99999")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if strings.TrimSpace(string(body)) != "{}" {
		t.Fatalf("expected empty object, got %q", body)
	}
}

func TestHandleGetLoan_BadID(t *testing.T) {
	srv := newTestServer(t)

	status, _ := getBody(t, srv.URL+"/request/abc")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestHandleReturnLoan(t *testing.T) {
	srv := newTestServer(t)
	getBody(t, srv.URL+"/add_books")

	_, created := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "a@b.com", "title": "Game",
	})
	id := int64(created["id"].(float64))

	status, body := doRequest(t, http.MethodPost, fmt.Sprintf("%s/request/%d/return", srv.URL, id))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var loan map[string]any
	if err := json.Unmarshal(body, &loan); err != nil {
		t.Fatalf("decode loan: %v", err)
	}
	if loan["return_date"] == nil {
		t.Fatalf("expected return_date to be set, got %v", loan)
	}

	// Returning again reports the loan as already closed.
	status, body = doRequest(t, http.MethodPost, fmt.Sprintf("%s/request/%d/return", srv.URL, id))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var msg map[string]string
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg["message"] != "Book already returned" {
		t.Fatalf("unexpected response: %q", body)
	}

	// The title is available for checkout again.
	status, next := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "c@d.com", "title": "Game",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if next["available"] != true {
		t.Fatalf("expected available=true after return, got %v", next)
	}
}

func TestHandleReturnLoan_NotFound(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, http.MethodPost, srv.URL+"/request/99999/return")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var msg map[string]string
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg["message"] != "No such loan" {
		t.Fatalf("unexpected response: %q", body)
	}
}

func TestHandleDeleteLoan(t *testing.T) {
	srv := newTestServer(t)
	getBody(t, srv.URL+"/add_books")

	_, created := postJSON(t, srv.URL+"/request", map[string]string{
		"email": "a@b.com", "title": "Art War",
	})
	id := int64(created["id"].(float64))

	status, body := doRequest(t, http.MethodDelete, fmt.Sprintf("%s/request/%d", srv.URL, id))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.HasPrefix(string(body), "Successfully delete ") {
		t.Fatalf("unexpected confirmation: %q", body)
	}
	// The confirmation embeds the deleted record's fields.
	if !strings.Contains(string(body), `"borrower_id"`) {
		t.Fatalf("expected serialized loan in confirmation, got %q", body)
	}

	// Fetching the deleted loan reflects not-found.
	status, body = getBody(t, fmt.Sprintf("%s/request/%d", srv.URL, id))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if strings.TrimSpace(string(body)) != "{}" {
		t.Fatalf("expected empty object after delete, got %q", body)
	}

	// Deleting again reports nothing to delete.
	status, body = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/request/%d", srv.URL, id))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(body) != "No item to delete\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}
