package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/prodwriter/internal/api"
	"github.com/phrazzld/prodwriter/internal/config"
	"github.com/phrazzld/prodwriter/internal/generation"
	"github.com/phrazzld/prodwriter/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 5,
		},
		LLM: config.LLMConfig{
			Provider:              "gemini",
			GeminiAPIKey:          "test-key",
			ModelName:             "gemini-1.5-flash",
			Temperature:           0.7,
			MaxOutputTokens:       4096,
			SafetyThreshold:       "BLOCK_MEDIUM_AND_ABOVE",
			MaxAttempts:           1,
			RetryBaseDelaySeconds: 1,
			RetryMaxDelaySeconds:  60,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg *config.Config, model generation.Model) *httptest.Server {
	t.Helper()
	app, err := newApplicationWithModel(cfg, discardLogger(), model)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

const descriptionJSON = `{
  "title": "SoundWave X",
  "details": ["20-hour battery", "waterproof"],
  "audience": ["Travelers"],
  "tone": "Informal",
  "length": "short",
  "keywords": ["portable"]
}`

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, testConfig(), mocks.NewMockModelWithText("ok"))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "prodwriter_http_requests_total")
}

func TestCreateDescriptionEndToEnd(t *testing.T) {
	model := mocks.NewMockModelWithText("Take **SoundWave X** anywhere.")
	srv := newTestServer(t, testConfig(), model)

	resp, err := http.Post(srv.URL+"/api/descriptions", "application/json", strings.NewReader(descriptionJSON))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))

	var out api.DescriptionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Take **SoundWave X** anywhere.", out.Text)
	assert.Contains(t, out.HTML, "<strong>SoundWave X</strong>")
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, "mock/model", out.Model)

	prompts := model.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "approximately 50 words")
	assert.Contains(t, prompts[0], "Informal")
}

func TestCreateDescription_ValidationMakesNoCall(t *testing.T) {
	model := mocks.NewMockModelWithText("unused")
	srv := newTestServer(t, testConfig(), model)

	resp, err := http.Post(srv.URL+"/api/descriptions", "application/json",
		strings.NewReader(`{"title": "", "details": [], "audience": [], "tone": "", "length": "", "keywords": []}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, model.Calls())
}

func TestCreateDescription_ExhaustedRetriesIsBadGateway(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.MaxAttempts = 1
	model := mocks.NewMockModelWithError(mocks.ErrTransient)
	srv := newTestServer(t, cfg, model)

	resp, err := http.Post(srv.URL+"/api/descriptions", "application/json", strings.NewReader(descriptionJSON))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 1, model.Calls())

	resp2, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode, "server keeps serving after a failed generation")
}

func TestWebForm(t *testing.T) {
	srv := newTestServer(t, testConfig(), mocks.NewMockModelWithText("Pack light."))

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Product Description Generator")

	form := url.Values{
		"title":    {"SoundWave X"},
		"details":  {"20-hour battery"},
		"audience": {"Travelers"},
		"tone":     {"Formal"},
		"length":   {"Short (1-2 sentences)"},
		"keywords": {"portable"},
	}
	resp, err = http.PostForm(srv.URL+"/", form)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<p>Pack light.</p>")
}

func TestNewApplication_GeminiProvider(t *testing.T) {
	var calls atomic.Int32
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates": [{"content": {"role": "model", "parts": [{"text": "From Gemini."}]}, "finishReason": "STOP"}]}`)
	}))
	t.Cleanup(fake.Close)

	cfg := testConfig()
	cfg.LLM.BaseURL = fake.URL

	app, err := newApplication(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/descriptions", "application/json", strings.NewReader(descriptionJSON))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.DescriptionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "From Gemini.", out.Text)
	assert.Equal(t, "gemini/gemini-1.5-flash", out.Model)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewModel_Providers(t *testing.T) {
	cfg := testConfig().LLM

	m, err := newModel(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-1.5-flash", m.Name())

	cfg.Provider = "openai"
	cfg.OpenAIAPIKey = "sk-test"
	cfg.ModelName = "gpt-4o-mini"
	m, err = newModel(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", m.Name())

	cfg.Provider = "carrier-pigeon"
	_, err = newModel(context.Background(), cfg, discardLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewApplication_BadPromptTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.PromptTemplatePath = "/nonexistent/prompt.tmpl"

	_, err := newApplicationWithModel(cfg, discardLogger(), mocks.NewMockModelWithText("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt template")
}

func TestStartHTTPServer_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.Server.Port = port
	app, err := newApplicationWithModel(cfg, discardLogger(), mocks.NewMockModelWithText("x"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
