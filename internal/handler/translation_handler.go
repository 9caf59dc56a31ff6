package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"polyglot/backend/internal/model"
	"polyglot/backend/internal/service"
)

// TranslationHandler serves the gateway endpoints.
type TranslationHandler struct {
	service service.RelayService
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translationResponse struct {
	ID              *int64  `json:"id"`
	OriginalText    string  `json:"original_text"`
	TranslatedText  string  `json:"translated_text"`
	SourceLang      string  `json:"source_lang"`
	TargetLang      string  `json:"target_lang"`
	TotalTime       float64 `json:"total_time"`
	InputPrepTime   float64 `json:"input_prep_time"`
	TranslationTime float64 `json:"translation_time"`
	DecodingTime    float64 `json:"decoding_time"`
	ModelLoadTime   float64 `json:"model_load_time"`
}

func NewTranslationHandler(service service.RelayService) *TranslationHandler {
	return &TranslationHandler{service: service}
}

func (h *TranslationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/translate/", h.Translate)
	e.GET("/translations/", h.List)
}

// Translate relays a request to the inference service and stores the result.
//
//	@Summary	Translate text and store the result
//	@Tags		translations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		translateRequest	true	"text and language codes"
//	@Success	200		{object}	translationResponse
//	@Failure	422		{object}	errorResponse
//	@Failure	500		{object}	errorResponse
//	@Failure	502		{object}	errorResponse
//	@Failure	503		{object}	errorResponse
//	@Router		/translate/ [post]
func (h *TranslationHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	translation, err := h.service.Translate(c.Request().Context(), model.TranslationRequest{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTranslationResponse(translation))
}

// List returns every stored translation.
//
//	@Summary	List stored translations
//	@Tags		translations
//	@Produce	json
//	@Success	200	{array}		translationResponse
//	@Failure	500	{object}	errorResponse
//	@Router		/translations/ [get]
func (h *TranslationHandler) List(c echo.Context) error {
	translations, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]translationResponse, 0, len(translations))
	for _, translation := range translations {
		response = append(response, toTranslationResponse(translation))
	}
	return c.JSON(http.StatusOK, response)
}

func toTranslationResponse(translation model.Translation) translationResponse {
	var id *int64
	if translation.Persisted() {
		id = &translation.ID
	}
	return translationResponse{
		ID:              id,
		OriginalText:    translation.OriginalText,
		TranslatedText:  translation.TranslatedText,
		SourceLang:      translation.SourceLang,
		TargetLang:      translation.TargetLang,
		TotalTime:       translation.TotalTime,
		InputPrepTime:   translation.InputPrepTime,
		TranslationTime: translation.TranslationTime,
		DecodingTime:    translation.DecodingTime,
		ModelLoadTime:   translation.ModelLoadTime,
	}
}
