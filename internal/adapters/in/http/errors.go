package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transport"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

var conflictErrors = []error{
	transport.ErrRequestNotAcceptingBids,
	transport.ErrDuplicateBid,
	transport.ErrBidNotEligible,
	errs.ErrInvalidTransition,
	errs.ErrConflict,
	errs.ErrResourceInUse,
	kernel.ErrCurrencyMismatch,
}

// StatusOf maps an error of the use case layer to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// NewErrorHandler renders errors as ErrorResponse. Unexpected errors are logged and
// reported without detail.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			he   *echo.HTTPError
			body ErrorResponse
		)
		switch {
		case errors.As(err, &he):
			body = ErrorResponse{Code: he.Code, Message: http.StatusText(he.Code)}
			if msg, ok := he.Message.(string); ok {
				body.Message = msg
			}
		default:
			body = ErrorResponse{Code: StatusOf(err), Message: err.Error()}
			var ve *errs.ValidationError
			if errors.As(err, &ve) {
				body.Fields = ve.Fields()
			}
		}

		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			body.Message = http.StatusText(body.Code)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(body.Code)
			return
		}
		_ = c.JSON(body.Code, body)
	}
}
