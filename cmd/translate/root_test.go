package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"polyglot/backend/internal/client"
)

func newFakeGateway(t *testing.T) (*httptest.Server, *map[string]string) {
	t.Helper()
	received := map[string]string{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /translate/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"original_text":"Hello, how are you?","translated_text":"Bonjour, comment allez-vous ?","source_lang":"eng","target_lang":"fra","total_time":2.5,"input_prep_time":0.1,"translation_time":2.3,"decoding_time":0.1,"model_load_time":0}`))
	})
	mux.HandleFunc("GET /translations/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"original_text":"Hello","translated_text":"Bonjour","source_lang":"eng","target_lang":"fra","total_time":2.5,"input_prep_time":0.1,"translation_time":2.3,"decoding_time":0.1,"model_load_time":0}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &received
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Defaults(t *testing.T) {
	srv, received := newFakeGateway(t)

	out, err := execute(t, "--server", srv.URL)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"text": "Hello, how are you?", "source_lang": "eng", "target_lang": "fra"}, *received)
	require.Contains(t, out, "Translated text: Bonjour, comment allez-vous ?")
	require.Contains(t, out, "Total translation time: 2.50 seconds")
}

func TestRootCmd_Flags(t *testing.T) {
	srv, received := newFakeGateway(t)

	_, err := execute(t, "--server", srv.URL, "--text", "Good morning", "-s", "eng", "-t", "deu")
	require.NoError(t, err)
	require.Equal(t, "Good morning", (*received)["text"])
	require.Equal(t, "deu", (*received)["target_lang"])
}

func TestRootCmd_ServerFromEnv(t *testing.T) {
	srv, _ := newFakeGateway(t)
	t.Setenv("POLYGLOT_SERVER_URL", srv.URL)

	out, err := execute(t)
	require.NoError(t, err)
	require.Contains(t, out, "Sending request to "+srv.URL+"/translate/")
}

func TestRootCmd_ServerFromConfigFile(t *testing.T) {
	srv, _ := newFakeGateway(t)
	t.Setenv("POLYGLOT_SERVER_URL", "")
	configFile := filepath.Join(t.TempDir(), "polyglot.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server: "+srv.URL+"\n"), 0o644))

	out, err := execute(t, "--config", configFile)
	require.NoError(t, err)
	require.Contains(t, out, "Sending request to "+srv.URL+"/translate/")
}

func TestRootCmd_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"AIEND service error: boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "--server", srv.URL)
	require.Error(t, err)
	require.Contains(t, out, "Translation failed.")
}

func TestListCmd(t *testing.T) {
	srv, _ := newFakeGateway(t)

	out, err := execute(t, "list", "--server", srv.URL)
	require.NoError(t, err)
	require.Contains(t, out, "Bonjour")
	require.Contains(t, out, "2.50s")
}

func TestListCmd_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Internal Server Error"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "list", "--server", srv.URL)
	require.ErrorIs(t, err, client.ErrRequestFailed)
	require.Contains(t, out, "An error occurred while listing translations")
	require.Contains(t, out, "500")
	require.True(t, reported(err))
}

func TestListCmd_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := execute(t, "list", "--server", url)
	require.Error(t, err)
	require.Contains(t, out, "An error occurred while listing translations")
}

func TestReported(t *testing.T) {
	require.True(t, reported(fmt.Errorf("wrap: %w", client.ErrDecodeFailed)))
	require.False(t, reported(errors.New("unknown flag: --nope")))
}
