package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"recruitin-engine/internal/csvdata"
	"recruitin-engine/internal/llm"
	"recruitin-engine/internal/store"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteDomainError maps the pipeline's error kinds onto HTTP statuses:
// bad input data 422, upstream generation 502, missing report 404, else 500.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *csvdata.MissingColumnError
	var malformed *csvdata.MalformedValueError
	var genErr *llm.GenerationError

	switch {
	case errors.As(err, &missing):
		WriteError(w, r, http.StatusUnprocessableEntity, "missing_column", missing.Error())
	case errors.As(err, &malformed):
		WriteError(w, r, http.StatusUnprocessableEntity, "malformed_value", malformed.Error())
	case errors.As(err, &genErr):
		WriteError(w, r, http.StatusBadGateway, "generation_failed", genErr.Error())
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
