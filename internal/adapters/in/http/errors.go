package http

import (
	"net/http"

	"tendering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps the workflow error taxonomy onto HTTP status codes.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindInvalidTransition, errs.KindDuplicateOpenQuotation:
		return http.StatusConflict
	case errs.KindRepository:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Storage and unexpected failures are
// logged and their details are kept out of the response.
func (s *Server) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)
	resp := ErrorResponse{
		Code:      status,
		Kind:      kind.String(),
		Message:   kind.Message(),
		Retryable: kind.Retryable(),
	}

	switch kind {
	case errs.KindRepository, errs.KindUnknown:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"kind", kind.String(),
			"error", err,
		)
	default:
		resp.Details = err.Error()
	}

	return c.JSON(status, resp)
}

func invalidRequest(c echo.Context, details string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindValidation.String(),
		Message: errs.KindValidation.Message(),
		Details: details,
	})
}
