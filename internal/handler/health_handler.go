package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model,omitempty"`
}

// HealthHandler answers liveness probes. It never touches the store or the model.
type HealthHandler struct {
	model string
}

// NewHealthHandler creates a probe handler; model is reported when non-empty.
func NewHealthHandler(model string) *HealthHandler {
	return &HealthHandler{model: model}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

// Health reports that the process is serving.
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Router		/healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Model: h.model})
}
