package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ebodine/booklend/internal/domain"
	"github.com/ebodine/booklend/internal/service"
)

// LoanHandler handles the loan workflow HTTP requests.
type LoanHandler struct {
	loans *service.LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loans *service.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// HandleList returns all loans, or {"message": "No data"} when there are none.
func (h *LoanHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.List(r.Context())
	if err != nil {
		slog.Error("list loans", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(loans) == 0 {
		writeMessage(w, http.StatusOK, "No data")
		return
	}
	writeJSON(w, http.StatusOK, toLoanDTOs(loans))
}

// HandleGet returns a single loan by id. An unknown id yields an empty
// JSON object rather than an error status.
func (h *LoanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.loans.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		slog.Error("get loan", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toLoanDTO(loan))
}

type checkoutRequest struct {
	Email string `json:"email"`
	Title string `json:"title"`
}

// HandleRequest processes a checkout request. Validation failures and a
// missing book are normal 200 responses carrying a message, not HTTP errors.
func (h *LoanHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := readJSON(r, &req); err != nil || req.Email == "" || req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "email and title are required")
		return
	}

	result, err := h.loans.Request(r.Context(), req.Email, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			writeMessage(w, http.StatusOK, "Please enter email in correct format")
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusOK, "No such book")
		default:
			slog.Error("checkout request", "error", err, "title", req.Title)
			writeMessage(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toCheckoutDTO(result))
}

// HandleReturn closes an outstanding loan by setting its return date.
func (h *LoanHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.loans.Return(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusOK, "No such loan")
		case errors.Is(err, domain.ErrAlreadyReturned):
			writeMessage(w, http.StatusOK, "Book already returned")
		default:
			slog.Error("return loan", "error", err, "id", id)
			writeMessage(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toLoanDTO(loan))
}

// HandleDelete removes a loan row outright and confirms in plain text,
// embedding the deleted record.
func (h *LoanHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	loan, err := h.loans.Remove(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			io.WriteString(w, "No item to delete\n")
			return
		}
		slog.Error("delete loan", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	serialized, err := json.Marshal(toLoanDTO(loan))
	if err != nil {
		slog.Error("marshal deleted loan", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Successfully delete %s\n", serialized)
}
