package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "polyglot/backend/docs"
	"polyglot/backend/internal/handler"
)

// NewBackendRouter builds the gateway server.
func NewBackendRouter(
	translationHandler *handler.TranslationHandler,
	healthHandler *handler.HealthHandler,
	corsOrigins []string,
	enableSwagger bool,
) *echo.Echo {
	e := newEcho(corsOrigins, enableSwagger)
	translationHandler.RegisterRoutes(e)
	healthHandler.RegisterRoutes(e)
	return e
}

// NewAIEndRouter builds the inference server.
func NewAIEndRouter(
	inferenceHandler *handler.InferenceHandler,
	healthHandler *handler.HealthHandler,
	corsOrigins []string,
	enableSwagger bool,
) *echo.Echo {
	e := newEcho(corsOrigins, enableSwagger)
	inferenceHandler.RegisterRoutes(e)
	healthHandler.RegisterRoutes(e)
	return e
}

func newEcho(corsOrigins []string, enableSwagger bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.CORSWithConfig(corsConfig(corsOrigins)))

	if enableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
	return e
}

func corsConfig(origins []string) middleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := false
	for _, origin := range origins {
		if origin == "*" {
			wildcard = true
			break
		}
	}
	return middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE, echo.OPTIONS},
		// browsers reject credentials on a wildcard origin
		AllowCredentials: !wildcard,
	}
}
