package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/ebodine/booklend/internal/service"
)

// BookHandler handles catalog HTTP requests.
type BookHandler struct {
	catalog *service.CatalogService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(catalog *service.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// HandleSeed inserts the demo titles and confirms in plain text.
func (h *BookHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Seed(r.Context()); err != nil {
		slog.Error("seed books", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Finish adding books")
}

// HandleList returns all books as a JSON array.
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.List(r.Context())
	if err != nil {
		slog.Error("list books", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toBookDTOs(books))
}
