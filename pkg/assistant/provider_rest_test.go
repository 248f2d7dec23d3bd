package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func restProviderFor(server *httptest.Server, apiKey string) *restProvider {
	return newRestProvider(ProviderConfig{
		RestAPIURL: server.URL,
		RestAPIKey: apiKey,
		RestModel:  "test-model",
	}, server.Client())
}

func TestRestProviderNotConfigured(t *testing.T) {
	t.Parallel()

	p := newRestProvider(ProviderConfig{}, nil)
	if p.IsConfigured() {
		t.Fatalf("expected unconfigured without endpoint")
	}
	_, err := p.GenerateResponse(context.Background(), "q", QueryIntent{}, "ctx")
	if !IsErrorCode(err, ErrCodeNotConfigured) {
		t.Fatalf("expected NOT_CONFIGURED, got %v", err)
	}
}

func TestRestProviderEnvelopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"ollama", `{"response":"from ollama"}`, "from ollama"},
		{"openai compatible", `{"choices":[{"message":{"content":"from chat"}}]}`, "from chat"},
		{"plain text field", `{"text":"from text"}`, "from text"},
		{"generated text object", `{"generated_text":"from hf"}`, "from hf"},
		{"generated text array", `[{"generated_text":"from hf array"}]`, "from hf array"},
		{"bare string", `"just a string"`, "just a string"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			content, err := restProviderFor(server, "").GenerateResponse(context.Background(), "q", QueryIntent{}, "ctx")
			if err != nil {
				t.Fatalf("GenerateResponse: %v", err)
			}
			if content != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, content)
			}
		})
	}
}

func TestRestProviderUnrecognizedEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	_, err := restProviderFor(server, "").GenerateResponse(context.Background(), "q", QueryIntent{}, "ctx")
	if !IsErrorCode(err, ErrCodeUnexpectedFormat) {
		t.Fatalf("expected UNEXPECTED_RESPONSE_FORMAT, got %v", err)
	}
}

func TestRestProviderStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusTooManyRequests, ErrCodeRateLimited},
		{http.StatusUnauthorized, ErrCodeAuthFailed},
		{http.StatusForbidden, ErrCodeAuthFailed},
		{http.StatusNotFound, ErrCodeModelUnavailable},
		{http.StatusInternalServerError, ErrCodeProvider},
	}
	for _, tt := range tests {
		tt := tt
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		_, err := restProviderFor(server, "").GenerateResponse(context.Background(), "q", QueryIntent{}, "ctx")
		if !IsErrorCode(err, tt.code) {
			t.Errorf("status %d: expected %s, got %v", tt.status, tt.code, err)
		}
		server.Close()
	}
}

func TestRestProviderRequestShape(t *testing.T) {
	t.Parallel()

	var got restRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer server.Close()

	_, err := restProviderFor(server, "secret").GenerateResponse(context.Background(), "my question", QueryIntent{}, "CONTEXT")
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}

	if auth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if got.Model != "test-model" {
		t.Fatalf("expected model in payload, got %q", got.Model)
	}
	if got.Stream {
		t.Fatalf("streaming must be disabled")
	}
	if got.Options.Temperature != providerTemperature || got.Options.MaxTokens != providerMaxTokens {
		t.Fatalf("unexpected options: %+v", got.Options)
	}
}

func TestRestProviderUnreachable(t *testing.T) {
	t.Parallel()

	p := newRestProvider(ProviderConfig{RestAPIURL: "http://127.0.0.1:1/generate"}, nil)
	_, err := p.GenerateResponse(context.Background(), "q", QueryIntent{}, "ctx")
	if !IsErrorCode(err, ErrCodeUnreachable) {
		t.Fatalf("expected UNREACHABLE, got %v", err)
	}
}
