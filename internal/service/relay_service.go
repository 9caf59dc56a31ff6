//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"polyglot/backend/internal/model"
	"polyglot/backend/internal/network"
	"polyglot/backend/internal/repository"
	"polyglot/backend/pkg/logger"
)

// RelayService forwards translate requests to the inference service and
// persists what it returns.
type RelayService interface {
	Translate(ctx context.Context, req model.TranslationRequest) (model.Translation, error)
	List(ctx context.Context) ([]model.Translation, error)
}

type relayService struct {
	aiendURL     string
	client       *http.Client
	translations repository.TranslationRepository
}

// NewRelayService creates the gateway relay. The HTTP client carries no
// timeout of its own.
func NewRelayService(aiendURL string, clientFactory *network.ClientFactory, translations repository.TranslationRepository) RelayService {
	return &relayService{
		aiendURL:     aiendURL,
		client:       clientFactory.NewHTTPClient(context.Background(), 0),
		translations: translations,
	}
}

// translatePayload is the wire body shared by the gateway and inference endpoints.
type translatePayload struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// upstreamTranslation is the inference response contract. Pointers tell a
// missing field apart from a zero value.
type upstreamTranslation struct {
	OriginalText    *string  `json:"original_text"`
	TranslatedText  *string  `json:"translated_text"`
	SourceLang      *string  `json:"source_lang"`
	TargetLang      *string  `json:"target_lang"`
	TotalTime       *float64 `json:"total_time"`
	InputPrepTime   *float64 `json:"input_prep_time"`
	TranslationTime *float64 `json:"translation_time"`
	DecodingTime    *float64 `json:"decoding_time"`
	ModelLoadTime   *float64 `json:"model_load_time"`
}

func (s *relayService) Translate(ctx context.Context, req model.TranslationRequest) (model.Translation, error) {
	if err := ValidateRequest(req); err != nil {
		return model.Translation{}, err
	}
	logger.Info("received translation request", "module", "service", "action", "translate", "resource", "translation", "source_lang", req.SourceLang, "target_lang", req.TargetLang, "text_length", len(req.Text))

	// once started, a relay runs to completion even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	translation, err := s.forward(ctx, req)
	if err != nil {
		return model.Translation{}, err
	}

	created, err := s.translations.Create(ctx, translation)
	if err != nil {
		logger.Error("persist translation failed", "module", "service", "action", "create", "resource", "translation", "result", "failed", "error", err)
		return model.Translation{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	logger.Info("translation saved to database", "module", "service", "action", "create", "resource", "translation", "result", "ok", "id", created.ID)
	return created, nil
}

func (s *relayService) forward(ctx context.Context, req model.TranslationRequest) (model.Translation, error) {
	body, err := json.Marshal(translatePayload{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		return model.Translation{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.aiendURL, bytes.NewReader(body))
	if err != nil {
		return model.Translation{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logger.Debug("sending request to translation service", "module", "service", "action", "forward", "resource", "aiend", "host", network.ExtractHost(s.aiendURL))
	resp, err := s.client.Do(httpReq)
	if err != nil {
		logger.Error("translation service request failed", "module", "service", "action", "forward", "resource", "aiend", "result", "failed", "url", s.aiendURL, "error", err)
		return model.Translation{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("translation service response read failed", "module", "service", "action", "forward", "resource", "aiend", "result", "failed", "error", err)
		return model.Translation{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	logger.Debug("received response from translation service", "module", "service", "action", "forward", "resource", "aiend", "status_code", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		logger.Error("translation service error", "module", "service", "action", "forward", "resource", "aiend", "result", "failed", "status_code", resp.StatusCode, "body", string(raw))
		return model.Translation{}, &UpstreamStatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	translation, err := decodeUpstream(raw)
	if err != nil {
		logger.Error("translation service response rejected", "module", "service", "action", "forward", "resource", "aiend", "result", "failed", "error", err)
		return model.Translation{}, err
	}
	logger.Info("received translation from translation service", "module", "service", "action", "forward", "resource", "aiend", "result", "ok")
	return translation, nil
}

func decodeUpstream(raw []byte) (model.Translation, error) {
	var payload upstreamTranslation
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.Translation{}, fmt.Errorf("%w: %v", ErrInvalidUpstreamResponse, err)
	}

	var missing []string
	requireString := func(name string, value *string) string {
		if value == nil {
			missing = append(missing, name)
			return ""
		}
		return *value
	}
	requireSeconds := func(name string, value *float64) float64 {
		if value == nil || *value < 0 {
			missing = append(missing, name)
			return 0
		}
		return *value
	}

	translation := model.Translation{
		OriginalText:    requireString("original_text", payload.OriginalText),
		TranslatedText:  requireString("translated_text", payload.TranslatedText),
		SourceLang:      requireString("source_lang", payload.SourceLang),
		TargetLang:      requireString("target_lang", payload.TargetLang),
		TotalTime:       requireSeconds("total_time", payload.TotalTime),
		InputPrepTime:   requireSeconds("input_prep_time", payload.InputPrepTime),
		TranslationTime: requireSeconds("translation_time", payload.TranslationTime),
		DecodingTime:    requireSeconds("decoding_time", payload.DecodingTime),
	}
	if payload.ModelLoadTime != nil {
		translation.ModelLoadTime = requireSeconds("model_load_time", payload.ModelLoadTime)
	}

	if len(missing) > 0 {
		return model.Translation{}, fmt.Errorf("%w: missing or invalid fields: %s", ErrInvalidUpstreamResponse, strings.Join(missing, ", "))
	}
	return translation, nil
}

func (s *relayService) List(ctx context.Context) ([]model.Translation, error) {
	translations, err := s.translations.List(ctx)
	if err != nil {
		logger.Error("list translations failed", "module", "service", "action", "list", "resource", "translation", "result", "failed", "error", err)
		return nil, fmt.Errorf("list translations: %w", err)
	}
	logger.Info("returning translations", "module", "service", "action", "list", "resource", "translation", "result", "ok", "count", len(translations))
	return translations, nil
}

// ValidateRequest checks the fields every translate request must carry.
func ValidateRequest(req model.TranslationRequest) error {
	var problems []string
	if strings.TrimSpace(req.Text) == "" {
		problems = append(problems, "text must not be empty")
	}
	if strings.TrimSpace(req.SourceLang) == "" {
		problems = append(problems, "source_lang must not be empty")
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		problems = append(problems, "target_lang must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
