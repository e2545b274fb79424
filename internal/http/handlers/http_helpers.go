package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/blog-api/internal/apperr"
)

const maxBodyBytes = 1 << 20

// readBody decodes a single JSON value from the request body into a T,
// reading at most maxBodyBytes. A missing, oversized or malformed body, or
// one with trailing data, yields the zero T so absent fields fail their own
// validation later.
func readBody[T any](w http.ResponseWriter, r *http.Request) T {
	var v T
	if r.Body == nil {
		return v
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		var zero T
		return zero
	}
	if dec.More() {
		var zero T
		return zero
	}
	return v
}

// WriteJSON marshals data and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	_ = WriteJSON(w, status, ErrorResponse{Error: msg})
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := WriteJSON(w, status, data); err != nil {
		s.Logger.Error(r.Context(), "failed to write JSON response", "err", err)
	}
}

// fail maps err to its status and writes the error body. Unexpected errors
// are logged and reported without their cause.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusCode(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
	}
	WriteError(w, status, apperr.Message(err))
}
