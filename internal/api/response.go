package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/erazemk/sledilnik/internal/model"
	"github.com/erazemk/sledilnik/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("error encoding response")
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, r *http.Request, status int, message string) {
	jsonResponse(w, r, status, map[string]string{"error": message})
}

// storeError maps a service error to a response: 404 for missing items,
// otherwise 500 carrying the error text.
func storeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, r, http.StatusNotFound, "item not found")
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	jsonError(w, r, http.StatusInternalServerError, err.Error())
}

// decodeJSON decodes a JSON request body into the given target.
// An empty body leaves target untouched and returns io.EOF.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

func isValidationError(err error) bool {
	var verr *model.ValidationError
	return errors.As(err, &verr)
}
