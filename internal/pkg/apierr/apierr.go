package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps the service error taxonomy onto an HTTP status and code.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return already
	}
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return &Error{Status: http.StatusBadRequest, Code: "validation_failed", Field: ve.Field, Err: err}
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, apperrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	case errors.Is(err, apperrors.ErrUpstream):
		return New(http.StatusBadGateway, "upstream_unavailable", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
