// Package httperr defines the typed error kinds the domain services report
// (not found, validation, conflict) and their translation to HTTP responses.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindConflict
)

// Error is a domain error carrying one of the typed kinds.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the typed kind of err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }

// ToHTTP maps a domain error onto an echo HTTP error. Untyped errors map to
// 500 with a generic message so internal details never leak to clients.
func ToHTTP(err error) *echo.HTTPError {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			return echo.NewHTTPError(http.StatusNotFound, e.Msg)
		case KindValidation:
			return echo.NewHTTPError(http.StatusBadRequest, e.Msg)
		case KindConflict:
			return echo.NewHTTPError(http.StatusConflict, e.Msg)
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
