package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"polyglot/backend/internal/inference"
	"polyglot/backend/internal/service"
	"polyglot/backend/pkg/logger"
)

const upstreamErrorPrefix = "AIEND service error: "

type errorResponse struct {
	Detail string `json:"detail"`
}

// Error writes a {"detail": message} body with the given status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Detail: message})
}

// writeServiceError maps gateway service errors to HTTP responses.
func writeServiceError(c echo.Context, err error) error {
	var statusErr *service.UpstreamStatusError
	switch {
	case errors.As(err, &statusErr):
		return Error(c, statusErr.StatusCode, upstreamErrorPrefix+statusErr.Body)
	case errors.Is(err, service.ErrInvalid):
		return Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return Error(c, http.StatusServiceUnavailable, unwrapDetail(err, service.ErrUpstreamUnavailable))
	case errors.Is(err, service.ErrInvalidUpstreamResponse):
		return Error(c, http.StatusBadGateway, err.Error())
	default:
		logger.Error("request failed", "module", "handler", "action", "respond", "result", "failed", "path", c.Path(), "error", err)
		return Error(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// writeInferenceError maps engine errors to HTTP responses.
func writeInferenceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inference.ErrInvalidInput):
		return Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, inference.ErrUnsupportedLanguage):
		return Error(c, http.StatusInternalServerError, err.Error())
	default:
		logger.Error("translation failed", "module", "handler", "action", "translate", "resource", "model", "result", "failed", "error", err)
		return Error(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// unwrapDetail returns the text of the cause wrapped next to sentinel, so a
// transport failure reads the same as the underlying client error.
func unwrapDetail(err, sentinel error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, cause := range joined.Unwrap() {
			if cause != sentinel {
				return cause.Error()
			}
		}
	}
	return err.Error()
}
