package serrors

import (
	"errors"
	"fmt"
)

// Kind classifies a business error into the transport-agnostic taxonomy
// shared by every module: callers map kinds to status codes, never codes
// to kinds.
type Kind int

const (
	KindBadRequest Kind = iota
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Base is a coded business error. Field is optional and names the offending
// DTO field for validation errors.
type Base struct {
	Code    string
	Kind    Kind
	Message string
	Field   string
}

// Error returns the human-readable message; the code travels separately in
// the response envelope and in logs.
func (e *Base) Error() string {
	return e.Message
}

// NewError creates a generic coded error. Kept for parity with event bus and
// infrastructure call sites that do not care about the taxonomy.
func NewError(code, message, field string) *Base {
	return &Base{Code: code, Kind: KindInternal, Message: message, Field: field}
}

func NewBadRequest(code, message, field string) *Base {
	return &Base{Code: code, Kind: KindBadRequest, Message: message, Field: field}
}

func NewForbidden(code, message string) *Base {
	return &Base{Code: code, Kind: KindForbidden, Message: message}
}

func NewNotFound(code, message string) *Base {
	return &Base{Code: code, Kind: KindNotFound, Message: message}
}

func NewConflict(code, message string) *Base {
	return &Base{Code: code, Kind: KindConflict, Message: message}
}

func NewFieldRequiredError(field string) *Base {
	return NewBadRequest("FIELD_REQUIRED", fmt.Sprintf("%s is required", field), field)
}

// KindOf reports the Kind of err if it is a *Base, KindInternal otherwise.
func KindOf(err error) Kind {
	var base *Base
	if errors.As(err, &base) {
		return base.Kind
	}
	return KindInternal
}
