package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"polyglot/backend/internal/client"
	"polyglot/backend/internal/model"
	"polyglot/backend/internal/network"

	"github.com/stretchr/testify/require"
)

const translationJSON = `{"id":3,"original_text":"Hello, how are you?","translated_text":"Bonjour, comment allez-vous ?","source_lang":"eng","target_lang":"fra","total_time":1.234,"input_prep_time":0.01,"translation_time":1.2,"decoding_time":0.024,"model_load_time":0}`

func newGateway(t *testing.T, status int, body string) (*httptest.Server, *map[string]string) {
	t.Helper()
	received := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&received)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestClient_Translate_Success(t *testing.T) {
	srv, received := newGateway(t, http.StatusOK, translationJSON)
	var out bytes.Buffer
	c := client.New(srv.URL+"/", network.NewClientFactoryForTest(srv.Client()), &out)

	result, err := c.Translate(context.Background(), "Hello, how are you?", "eng", "fra")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, int64(3), result.ID)
	require.Equal(t, "Bonjour, comment allez-vous ?", result.TranslatedText)
	require.Equal(t, map[string]string{"text": "Hello, how are you?", "source_lang": "eng", "target_lang": "fra"}, *received)

	log := out.String()
	require.Contains(t, log, "Sending request to "+srv.URL+"/translate/")
	require.Contains(t, log, `"source_lang": "eng"`)
	require.Contains(t, log, "Response status code: 200")
	require.Contains(t, log, `"Content-Type": "application/json"`)
	require.Contains(t, log, "Response content: "+translationJSON)
}

func TestClient_Translate_ErrorStatus(t *testing.T) {
	srv, _ := newGateway(t, http.StatusServiceUnavailable, `{"detail":"connection refused"}`)
	var out bytes.Buffer
	c := client.New(srv.URL, network.NewClientFactoryForTest(srv.Client()), &out)

	result, err := c.Translate(context.Background(), "Hello", "eng", "fra")
	require.ErrorIs(t, err, client.ErrRequestFailed)
	require.Nil(t, result)
	require.Contains(t, out.String(), "Response status code: 503")
	require.Contains(t, out.String(), `Error response content: {"detail":"connection refused"}`)
}

func TestClient_Translate_Unreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	var out bytes.Buffer
	c := client.New("http://"+addr, nil, &out)

	result, err := c.Translate(context.Background(), "Hello", "eng", "fra")
	require.ErrorIs(t, err, client.ErrRequestFailed)
	require.Nil(t, result)
	require.Contains(t, out.String(), "An error occurred while sending the request")
}

func TestClient_Translate_MalformedBody(t *testing.T) {
	srv, _ := newGateway(t, http.StatusOK, `<html>`)
	var out bytes.Buffer
	c := client.New(srv.URL, network.NewClientFactoryForTest(srv.Client()), &out)

	result, err := c.Translate(context.Background(), "Hello", "eng", "fra")
	require.ErrorIs(t, err, client.ErrDecodeFailed)
	require.Nil(t, result)
	require.Contains(t, out.String(), "Failed to decode the server response.")
}

func TestClient_List(t *testing.T) {
	srv, _ := newGateway(t, http.StatusOK, "["+translationJSON+"]")
	c := client.New(srv.URL, network.NewClientFactoryForTest(srv.Client()), nil)

	translations, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, translations, 1)
	require.Equal(t, int64(3), translations[0].ID)
}

func TestClient_List_ErrorStatus(t *testing.T) {
	srv, _ := newGateway(t, http.StatusInternalServerError, `{"detail":"Internal Server Error"}`)
	c := client.New(srv.URL, network.NewClientFactoryForTest(srv.Client()), nil)

	_, err := c.List(context.Background())
	require.ErrorIs(t, err, client.ErrRequestFailed)
	require.Contains(t, err.Error(), "Internal Server Error")
}

func TestPrintTranslation(t *testing.T) {
	var out bytes.Buffer
	client.PrintTranslation(&out, &model.Translation{
		OriginalText:    "Hello, how are you?",
		TranslatedText:  "Bonjour, comment allez-vous ?",
		SourceLang:      "eng",
		TargetLang:      "fra",
		TotalTime:       1.234,
		InputPrepTime:   0.01,
		TranslationTime: 1.2,
		DecodingTime:    0.024,
	})

	expected := strings.Join([]string{
		"",
		"Translation Result:",
		"Original text: Hello, how are you?",
		"Translated text: Bonjour, comment allez-vous ?",
		"Source language: eng",
		"Target language: fra",
		"Total translation time: 1.23 seconds",
		"Input preparation time: 0.01 seconds",
		"Translation time: 1.20 seconds",
		"Decoding time: 0.02 seconds",
		"",
	}, "\n")
	require.Equal(t, expected, out.String())
}

func TestPrintTranslation_Nil(t *testing.T) {
	var out bytes.Buffer
	client.PrintTranslation(&out, nil)
	require.Equal(t, "Translation failed.\n", out.String())
}

func TestPrintTranslations(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, client.PrintTranslations(&out, nil))
	require.Equal(t, "No translations stored.\n", out.String())

	out.Reset()
	require.NoError(t, client.PrintTranslations(&out, []model.Translation{
		{ID: 1, OriginalText: "Hello", TranslatedText: "Bonjour", SourceLang: "eng", TargetLang: "fra", TotalTime: 0.5},
	}))
	require.Contains(t, out.String(), "ID")
	require.Contains(t, out.String(), "Bonjour")
	require.Contains(t, out.String(), "0.50s")
}
