package handler

import (
	"io"
	"net/http"
)

// HandleHome responds with the plain-text greeting.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "<p>Hello, World!</p>")
}
