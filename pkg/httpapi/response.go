package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vendra-hq/vendra-sdk/pkg/pagination"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

// Envelope is the single response shape for success and failure: callers
// never need a separate error schema.
type Envelope struct {
	StatusCode int              `json:"statusCode"`
	Message    string           `json:"message"`
	Data       any              `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func Ok(w http.ResponseWriter, message string, data any) error {
	return WriteJSON(w, http.StatusOK, &Envelope{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

func Created(w http.ResponseWriter, message string, data any) error {
	return WriteJSON(w, http.StatusCreated, &Envelope{
		StatusCode: http.StatusCreated,
		Message:    message,
		Data:       data,
	})
}

func Page(w http.ResponseWriter, message string, data any, meta pagination.Meta) error {
	return WriteJSON(w, http.StatusOK, &Envelope{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Pagination: &meta,
	})
}

// StatusOf maps the business error taxonomy to HTTP status codes.
func StatusOf(err error) int {
	switch serrors.KindOf(err) {
	case serrors.KindBadRequest:
		return http.StatusBadRequest
	case serrors.KindForbidden:
		return http.StatusForbidden
	case serrors.KindNotFound:
		return http.StatusNotFound
	case serrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteErr renders a business error in the shared envelope. Internal errors
// are masked with a generic message; everything else surfaces its own.
func WriteErr(w http.ResponseWriter, err error) error {
	status := StatusOf(err)
	message := "internal server error"
	var base *serrors.Base
	if errors.As(err, &base) && base.Kind != serrors.KindInternal {
		message = base.Message
	}
	return WriteJSON(w, status, &Envelope{
		StatusCode: status,
		Message:    message,
	})
}
