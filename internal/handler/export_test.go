package handler

// Export for testing
type TranslationResponse = translationResponse
type HealthResponse = healthResponse
type ErrorResponse = errorResponse

var WriteServiceError = writeServiceError
var WriteInferenceError = writeInferenceError
