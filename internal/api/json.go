package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/commands"
)

const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string      `json:"error" validate:"required"`
	Kind  apperr.Kind `json:"kind,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps a command failure to a status code by its kind.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var cerr *commands.Error
	if !errors.As(err, &cerr) {
		cerr = &commands.Error{Kind: apperr.KindStorage, Message: err.Error()}
	}

	status := http.StatusInternalServerError
	switch cerr.Kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalid:
		status = http.StatusBadRequest
	default:
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", cerr.Message))
	}
	writeJSON(w, status, errResponse{Error: cerr.Message, Kind: cerr.Kind})
}

// decodeBody reads a size-limited JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errResponse{
			Error: fmt.Sprintf("invalid JSON body: %v", err),
			Kind:  apperr.KindInvalid,
		})
		return false
	}
	return true
}
