package handler

import (
	"log/slog"
	"net/http"

	"github.com/ebodine/booklend/internal/domain"
)

// UserHandler handles user listing requests.
type UserHandler struct {
	users domain.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users domain.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// HandleList returns all users as a JSON array.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTOs(users))
}
