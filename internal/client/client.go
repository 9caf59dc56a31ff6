package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"polyglot/backend/internal/model"
	"polyglot/backend/internal/network"
)

const DefaultServerURL = "http://localhost:8080"

var (
	ErrRequestFailed = errors.New("translation request failed")
	ErrDecodeFailed  = errors.New("failed to decode the server response")
)

// Client talks to the gateway and reports every step of the exchange on out.
type Client struct {
	serverURL  string
	httpClient *http.Client
	out        io.Writer
}

func New(serverURL string, clientFactory *network.ClientFactory, out io.Writer) *Client {
	if strings.TrimSpace(serverURL) == "" {
		serverURL = DefaultServerURL
	}
	if clientFactory == nil {
		clientFactory = network.NewClientFactory(nil)
	}
	if out == nil {
		out = io.Discard
	}
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: clientFactory.NewHTTPClient(context.Background(), 0),
		out:        out,
	}
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translationPayload struct {
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

// Translate posts one request to the gateway. A nil translation is returned
// together with ErrRequestFailed or ErrDecodeFailed.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (*model.Translation, error) {
	endpoint := c.serverURL + "/translate/"
	data := translateRequest{Text: text, SourceLang: sourceLang, TargetLang: targetLang}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	pretty, _ := json.MarshalIndent(data, "", "  ")
	fmt.Fprintf(c.out, "Sending request to %s\n", endpoint)
	fmt.Fprintf(c.out, "Request data: %s\n", pretty)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(c.out, "An error occurred while sending the request: %v\n", err)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(c.out, "An error occurred while sending the request: %v\n", err)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(c.out, "An error occurred while sending the request: %v\n", err)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	headers, _ := json.MarshalIndent(flattenHeaders(resp.Header), "", "  ")
	fmt.Fprintf(c.out, "Response status code: %d\n", resp.StatusCode)
	fmt.Fprintf(c.out, "Response headers: %s\n", headers)
	fmt.Fprintf(c.out, "Response content: %s\n", raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(c.out, "An error occurred while sending the request: %s\n", resp.Status)
		fmt.Fprintf(c.out, "Error response content: %s\n", raw)
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, resp.Status)
	}

	var payload translationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		fmt.Fprintln(c.out, "Failed to decode the server response.")
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	translation := payload.toModel()
	return &translation, nil
}

// List fetches every stored translation.
func (c *Client) List(ctx context.Context) ([]model.Translation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/translations/", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrRequestFailed, resp.Status, strings.TrimSpace(string(raw)))
	}

	var payloads []translationPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	translations := make([]model.Translation, 0, len(payloads))
	for _, payload := range payloads {
		translations = append(translations, payload.toModel())
	}
	return translations, nil
}

func (p translationPayload) toModel() model.Translation {
	var id int64
	if p.ID != nil {
		id = *p.ID
	}
	return model.Translation{
		ID:              id,
		OriginalText:    p.OriginalText,
		TranslatedText:  p.TranslatedText,
		SourceLang:      p.SourceLang,
		TargetLang:      p.TargetLang,
		TotalTime:       p.TotalTime,
		InputPrepTime:   p.InputPrepTime,
		TranslationTime: p.TranslationTime,
		DecodingTime:    p.DecodingTime,
		ModelLoadTime:   p.ModelLoadTime,
	}
}

func flattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out[key] = strings.Join(header[key], ", ")
	}
	return out
}
