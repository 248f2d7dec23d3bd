package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"portfoliochat/pkg/assistant"
)

func setupTestRouter(t *testing.T) (http.Handler, *assistant.Core) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	core, err := assistant.OpenWithOptions(assistant.Options{
		DBPath:    dbPath,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		RandSeed:  1,
		Providers: &assistant.ProviderConfig{},
	})
	if err != nil {
		t.Fatalf("open core: %v", err)
	}
	t.Cleanup(func() {
		_ = core.Close()
	})
	return NewRouter(core), core
}

func doRequest(h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rr.Body.String())
	}
	return resp
}

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "{\"status\":\"ok\"}\n" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestChatEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr := doRequest(router, http.MethodPost, "/api/chat", []byte(`{"message":"What's my performance today?"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Code int          `json:"code"`
		Data chatResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.UserMessage.Role != "user" || resp.Data.UserMessage.Content == "" {
		t.Fatalf("bad user message: %+v", resp.Data.UserMessage)
	}
	if resp.Data.AssistantMessage.Role != "assistant" {
		t.Fatalf("bad assistant message: %+v", resp.Data.AssistantMessage)
	}
	// No remote provider configured, so pattern matching answers.
	if resp.Data.AssistantMessage.Provider != "pattern" {
		t.Fatalf("expected pattern provider, got %q", resp.Data.AssistantMessage.Provider)
	}
	if resp.Data.Intent.Category != assistant.IntentPerformance {
		t.Fatalf("expected performance intent, got %s", resp.Data.Intent.Category)
	}
}

func TestChatEndpointValidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr := doRequest(router, http.MethodPost, "/api/chat", []byte(`{"message":"   "}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", rr.Code)
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.ErrorCode != string(assistant.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %q", errResp.ErrorCode)
	}

	rr = doRequest(router, http.MethodPost, "/api/chat", []byte(`{not json`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid json, got %d", rr.Code)
	}

	long := bytes.Repeat([]byte("a"), maxChatMessageLength+1)
	payload, _ := json.Marshal(map[string]string{"message": string(long)})
	rr = doRequest(router, http.MethodPost, "/api/chat", payload)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized message, got %d", rr.Code)
	}
}

func TestGetProviders(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/providers", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Data []assistant.ProviderInfo `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 5 {
		t.Fatalf("expected 5 providers, got %d", len(resp.Data))
	}
}

func TestSetProvider(t *testing.T) {
	router, core := setupTestRouter(t)

	rr := doRequest(router, http.MethodPut, "/api/provider", []byte(`{"provider":"Pattern"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if core.CurrentProvider() != "pattern" {
		t.Fatalf("expected pattern selected, got %q", core.CurrentProvider())
	}

	rr = doRequest(router, http.MethodPut, "/api/provider", []byte(`{"provider":"bogus"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown provider, got %d", rr.Code)
	}

	rr = doRequest(router, http.MethodPut, "/api/provider", []byte(`{"provider":""}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty provider, got %d", rr.Code)
	}
}

func TestPortfolioEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/portfolio/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", rr.Code)
	}
	var summaryResp struct {
		Data assistant.PortfolioSummary `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summaryResp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summaryResp.Data.TotalUnrealizedPnLPercent != 17.5 {
		t.Fatalf("unexpected summary: %+v", summaryResp.Data)
	}

	rr = doRequest(router, http.MethodGet, "/api/portfolio/assets", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("assets: expected 200, got %d", rr.Code)
	}
	var assetsResp struct {
		Data []assistant.Asset `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &assetsResp); err != nil {
		t.Fatalf("decode assets: %v", err)
	}
	if len(assetsResp.Data) != 12 {
		t.Fatalf("expected 12 assets, got %d", len(assetsResp.Data))
	}

	rr = doRequest(router, http.MethodGet, "/api/portfolio/allocation", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("allocation: expected 200, got %d", rr.Code)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	router, core := setupTestRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/settings", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = doRequest(router, http.MethodPut, "/api/settings", []byte(`{"provider":"pattern","gemini_model":"gemini-2.0-flash"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	settings, err := core.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.Provider != "pattern" || settings.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("settings not persisted: %+v", settings)
	}

	rr = doRequest(router, http.MethodPut, "/api/settings", []byte(`{"provider":"nope"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown provider, got %d", rr.Code)
	}
}

func TestUnifiedResponseEnvelope(t *testing.T) {
	router, _ := setupTestRouter(t)

	rr := doRequest(router, http.MethodGet, "/api/providers", nil)
	resp := decodeResponse(t, rr)
	if resp.Code != 0 {
		t.Fatalf("expected code 0 envelope, got %d", resp.Code)
	}
}
