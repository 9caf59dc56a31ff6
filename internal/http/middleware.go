package http

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"polyglot/backend/pkg/logger"
)

// RequestIDMiddleware tags every request with an X-Request-ID, keeping the
// caller's value when one is sent.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLoggerMiddleware writes one access log line per request, at a level
// chosen by the status class.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			status := res.Status

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
			if !logger.Enabled(level) {
				return nil
			}

			requestID := res.Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = req.Header.Get(echo.HeaderXRequestID)
			}
			logger.Logger().Log(req.Context(), level, "http request",
				"module", "http",
				"action", "request",
				"resource", c.Path(),
				"method", req.Method,
				"uri", req.RequestURI,
				"status", status,
				"latency", time.Since(start),
				"bytes_out", res.Size,
				"remote_ip", c.RealIP(),
				"request_id", requestID,
			)
			return nil
		}
	}
}
