package handler_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"polyglot/backend/internal/handler"
)

func assertRoute(t *testing.T, routes []*echo.Route, method, path string) {
	t.Helper()
	for _, r := range routes {
		if r.Method == method && r.Path == path {
			return
		}
	}
	t.Fatalf("route not found: %s %s", method, path)
}

func TestHandler_RegisterRoutes(t *testing.T) {
	gateway := echo.New()
	handler.NewTranslationHandler(nil).RegisterRoutes(gateway)
	handler.NewHealthHandler("").RegisterRoutes(gateway)

	routes := gateway.Routes()
	assertRoute(t, routes, http.MethodPost, "/translate/")
	assertRoute(t, routes, http.MethodGet, "/translations/")
	assertRoute(t, routes, http.MethodGet, "/healthz")

	aiend := echo.New()
	handler.NewInferenceHandler(nil).RegisterRoutes(aiend)

	assertRoute(t, aiend.Routes(), http.MethodPost, "/translate/")
}
