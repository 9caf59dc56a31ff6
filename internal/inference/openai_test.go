package inference_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"polyglot/backend/internal/inference"
	"polyglot/backend/internal/model"

	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   int64    `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// newModelServer fakes an OpenAI-compatible endpoint serving one model.
func newModelServer(t *testing.T, modelID, reply string, calls *atomic.Int32, last *chatRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != modelID {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":%q,"object":"model","created":0,"owned_by":"local"}`, modelID)
	})
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if last != nil {
			*last = req
		}
		body := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var last chatRequest
	srv := newModelServer(t, "m4t", "Bonjour", nil, &last)
	generator := inference.NewOpenAIGenerator("", srv.URL+"/v1/", "m4t", 128, "")

	out, err := generator.Generate(context.Background(), inference.Input{
		Text: "Hello", SourceCode: "eng", TargetCode: "fra", SourceName: "English", TargetName: "French",
	})
	require.NoError(t, err)
	require.Equal(t, "Bonjour", out)

	require.Equal(t, "m4t", last.Model)
	require.NotNil(t, last.Temperature)
	require.Zero(t, *last.Temperature)
	require.Equal(t, int64(128), last.MaxTokens)
	require.Len(t, last.Messages, 2)
	require.Equal(t, "system", last.Messages[0].Role)
	require.Contains(t, last.Messages[0].Content, "from English to French")
	require.Equal(t, "user", last.Messages[1].Role)
	require.Equal(t, "Hello", last.Messages[1].Content)
}

func TestOpenAIGenerator_CustomPrompt(t *testing.T) {
	var last chatRequest
	srv := newModelServer(t, "m4t", "Hallo", nil, &last)
	generator := inference.NewOpenAIGenerator("key", srv.URL+"/v1/", "m4t", 0, "translate {source_code} -> {target_code}")

	_, err := generator.Generate(context.Background(), inference.Input{Text: "Hello", SourceCode: "eng", TargetCode: "deu"})
	require.NoError(t, err)
	require.Equal(t, "translate eng -> deu", last.Messages[0].Content)
}

func TestOpenAIGenerator_Verify(t *testing.T) {
	srv := newModelServer(t, "m4t", "", nil, nil)

	require.NoError(t, inference.NewOpenAIGenerator("", srv.URL+"/v1/", "m4t", 0, "").Verify(context.Background()))
	require.Error(t, inference.NewOpenAIGenerator("", srv.URL+"/v1/", "missing", 0, "").Verify(context.Background()))
}

func TestLoad(t *testing.T) {
	var calls atomic.Int32
	srv := newModelServer(t, "m4t", "<s>Bonjour</s>", &calls, nil)
	dir := filepath.Join(t.TempDir(), "seamless-m4t-v2-large")
	writeManifest(t, dir, fmt.Sprintf("generator:\n  kind: openai\n  base_url: %s/v1/\n  model: m4t\n", srv.URL))

	engine, err := inference.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "seamless-m4t-v2-large", engine.Name())
	require.Positive(t, engine.LoadDuration())

	result, err := engine.Translate(context.Background(), model.TranslationRequest{
		Text: "Hello", SourceLang: "eng", TargetLang: "fra",
	})
	require.NoError(t, err)
	require.Equal(t, "Bonjour", result.TranslatedText)
	require.Equal(t, int32(1), calls.Load())
}

func TestLoad_UnknownModel(t *testing.T) {
	srv := newModelServer(t, "m4t", "", nil, nil)
	dir := t.TempDir()
	writeManifest(t, dir, fmt.Sprintf("generator:\n  kind: openai\n  base_url: %s/v1/\n  model: other\n", srv.URL))

	_, err := inference.Load(context.Background(), dir)
	require.Error(t, err)
}

func TestLoad_SkipVerify(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "generator:\n  kind: openai\n  base_url: http://127.0.0.1:1/v1/\n  model: m4t\n  skip_verify: true\n")

	engine, err := inference.Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, engine)
}
