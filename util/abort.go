package util

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse is the body of every failed request.
type ErrResponse struct {
	Error string `json:"error"`
}

// Abort replies with status and a JSON error body.
func Abort(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, &ErrResponse{Error: msg})
}
