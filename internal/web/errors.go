package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kesslermatics/vibeswipe/internal/auth"
	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/generate"
)

// errorResponse is the JSON error envelope for every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error envelope.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeMappedError maps a pipeline or auth error onto the response
// taxonomy: bad input gets 4xx, everything else is treated as an upstream
// failure with the error text passed through verbatim.
func writeMappedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generate.ErrSpotifyNotLinked):
		writeError(w, http.StatusUnauthorized, "Spotify account not linked")
	case errors.Is(err, generate.ErrNotEnoughTracks),
		errors.Is(err, generate.ErrNotEnoughResolved),
		errors.Is(err, auth.ErrRedirectNotAllowed),
		errors.Is(err, auth.ErrMissingCode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmptyPassword):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, db.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "already exists")
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
