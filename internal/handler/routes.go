package handler

import (
	"net/http"

	"github.com/ebodine/booklend/internal/domain"
	"github.com/ebodine/booklend/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, catalog *service.CatalogService, loans *service.LoanService, users domain.UserRepository) {
	bookHandler := NewBookHandler(catalog)
	loanHandler := NewLoanHandler(loans)
	userHandler := NewUserHandler(users)

	mux.HandleFunc("GET /{$}", HandleHome)
	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("GET /add_books", bookHandler.HandleSeed)
	mux.HandleFunc("GET /books", bookHandler.HandleList)
	mux.HandleFunc("GET /users", userHandler.HandleList)

	mux.HandleFunc("GET /request", loanHandler.HandleList)
	mux.HandleFunc("POST /request", loanHandler.HandleRequest)
	mux.HandleFunc("GET /request/{id}", loanHandler.HandleGet)
	mux.HandleFunc("POST /request/{id}/return", loanHandler.HandleReturn)
	mux.HandleFunc("DELETE /request/{id}", loanHandler.HandleDelete)
}
