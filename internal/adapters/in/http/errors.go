package http

import (
	"errors"
	"net/http"

	"reparto/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusForError maps domain errors to HTTP status codes: missing objects to
// 404, validation failures to 400, invariant conflicts to 409, anything else
// to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes the uniform error body for err. Internal errors keep
// their detail out of the response.
func errorResponse(ctx echo.Context, err error) error {
	code := statusForError(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
