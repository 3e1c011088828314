package apperr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Kind is the small taxonomy every persistence or validation failure is
// re-classified into before it reaches a handler.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // original cause, never serialized to clients
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Message: "internal error", Err: err}
}

// KindOf reports the taxonomy kind of err, KindUnknown for anything
// that was never classified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Classify maps low-level persistence errors into the taxonomy. Already
// classified errors pass through unchanged.
func Classify(entity string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: KindNotFound, Message: entity + " not found", Err: err}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return &Error{Kind: KindConflict, Message: entity + " already exists", Err: err}
		case "23503": // foreign_key_violation
			return &Error{Kind: KindConflict, Message: entity + " is referenced by other records", Err: err}
		case "23502", "23514": // not_null_violation, check_violation
			return &Error{Kind: KindValidation, Message: "invalid " + entity + " data", Err: err}
		default:
			if pqErr.Code.Class() == "22" { // data exception
				return &Error{Kind: KindValidation, Message: "invalid " + entity + " data", Err: err}
			}
		}
	}
	return Unknown(err)
}

// StatusCode maps the taxonomy to HTTP status codes.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return 404
	case KindValidation:
		return 422
	case KindConflict:
		return 409
	case KindUnauthorized:
		return 401
	default:
		return 500
	}
}
