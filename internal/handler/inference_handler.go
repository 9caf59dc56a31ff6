package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"polyglot/backend/internal/inference"
	"polyglot/backend/internal/model"
)

// InferenceHandler serves the model endpoint.
type InferenceHandler struct {
	translator inference.Translator
}

func NewInferenceHandler(translator inference.Translator) *InferenceHandler {
	return &InferenceHandler{translator: translator}
}

func (h *InferenceHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/translate/", h.Translate)
}

// Translate runs the loaded model. Nothing is persisted, so the id is null.
//
//	@Summary	Translate text with the loaded model
//	@Tags		inference
//	@Accept		json
//	@Produce	json
//	@Param		request	body		translateRequest	true	"text and language codes"
//	@Success	200		{object}	translationResponse
//	@Failure	422		{object}	errorResponse
//	@Failure	500		{object}	errorResponse
//	@Router		/translate/ [post]
func (h *InferenceHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	// generation is not abandoned when the caller disconnects
	ctx := context.WithoutCancel(c.Request().Context())
	translation, err := h.translator.Translate(ctx, model.TranslationRequest{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		return writeInferenceError(c, err)
	}
	return c.JSON(http.StatusOK, toTranslationResponse(translation))
}
