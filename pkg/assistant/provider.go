package assistant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// Provider is a swappable response-generation strategy. Implementations
// either answer locally (pattern matching) or call a remote text-generation
// service. GenerateResponse may fail; retries are the orchestrator's concern.
type Provider interface {
	Name() string
	DisplayName() string
	IsConfigured() bool
	GenerateResponse(ctx context.Context, query string, intent QueryIntent, portfolioContext string) (string, error)
}

// ProviderConfig carries the per-provider configuration read once at
// registry construction.
type ProviderConfig struct {
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	AnthropicAPIKey string
	AnthropicModel string
	RestAPIURL     string
	RestAPIKey     string
	RestModel      string
}

// Environment keys for the provider configuration surface.
const (
	envGeminiAPIKey    = "PORTFOLIO_CHAT_GEMINI_API_KEY"
	envGeminiModel     = "PORTFOLIO_CHAT_GEMINI_MODEL"
	envOpenAIAPIKey    = "PORTFOLIO_CHAT_OPENAI_API_KEY"
	envOpenAIModel     = "PORTFOLIO_CHAT_OPENAI_MODEL"
	envAnthropicAPIKey = "PORTFOLIO_CHAT_ANTHROPIC_API_KEY"
	envAnthropicModel  = "PORTFOLIO_CHAT_ANTHROPIC_MODEL"
	envRestAPIURL      = "PORTFOLIO_CHAT_REST_API_URL"
	envRestAPIKey      = "PORTFOLIO_CHAT_REST_API_KEY"
	envRestModel       = "PORTFOLIO_CHAT_REST_API_MODEL"
)

func providerConfigFromEnv() ProviderConfig {
	return ProviderConfig{
		GeminiAPIKey:    strings.TrimSpace(os.Getenv(envGeminiAPIKey)),
		GeminiModel:     strings.TrimSpace(os.Getenv(envGeminiModel)),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv(envOpenAIAPIKey)),
		OpenAIModel:     strings.TrimSpace(os.Getenv(envOpenAIModel)),
		AnthropicAPIKey: strings.TrimSpace(os.Getenv(envAnthropicAPIKey)),
		AnthropicModel:  strings.TrimSpace(os.Getenv(envAnthropicModel)),
		RestAPIURL:      strings.TrimSpace(os.Getenv(envRestAPIURL)),
		RestAPIKey:      strings.TrimSpace(os.Getenv(envRestAPIKey)),
		RestModel:       strings.TrimSpace(os.Getenv(envRestModel)),
	}
}

// assistantSystemPrompt constrains remote providers to descriptive analytics.
const assistantSystemPrompt = `You are an AI portfolio assistant. Analyze portfolios and answer questions.

IMPORTANT GUIDELINES:
- Be helpful and conversational
- Use specific numbers from the portfolio data
- Provide descriptive analysis only (no investment advice)
- Keep responses concise (2-3 sentences max)
- Focus on factual performance metrics
- Use a friendly, professional tone`

func buildUserPrompt(portfolioContext, query string) string {
	return fmt.Sprintf("PORTFOLIO DATA:\n%s\n\nUSER QUESTION: %s", portfolioContext, query)
}

// Generation parameters shared by the remote providers.
const (
	providerTemperature = 0.7
	providerMaxTokens   = 200
)

// Registry holds the fixed set of named providers, constructed once at
// process start. The pattern provider is the designated default.
type Registry struct {
	providers   map[string]Provider
	order       []string
	defaultName string
}

func newRegistry(c *Core, cfg ProviderConfig) *Registry {
	entries := []Provider{
		newPatternProvider(c),
		newGeminiProvider(cfg),
		newOpenAIProvider(cfg),
		newAnthropicProvider(cfg),
		newRestProvider(cfg, nil),
	}

	providers := make(map[string]Provider, len(entries))
	order := make([]string, 0, len(entries))
	for _, p := range entries {
		providers[p.Name()] = p
		order = append(order, p.Name())
	}
	return &Registry{
		providers:   providers,
		order:       order,
		defaultName: providerNamePattern,
	}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Default returns the designated default provider used as fallback target.
func (r *Registry) Default() Provider {
	return r.providers[r.defaultName]
}

// List reports every registry entry in registration order.
func (r *Registry) List(selected string) []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(r.order))
	for _, name := range r.order {
		p := r.providers[name]
		infos = append(infos, ProviderInfo{
			Name:        p.Name(),
			DisplayName: p.DisplayName(),
			Configured:  p.IsConfigured(),
			Selected:    name == selected,
		})
	}
	return infos
}

// classifyProviderError maps a provider failure onto the error taxonomy.
// Remote services disagree on error shapes, so classification leans on
// status-code markers in the message, the same way the upstream SDK errors
// surface them.
func classifyProviderError(name string, err error) *Error {
	if err == nil {
		return nil
	}
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return WrapError(ErrCodeRateLimited, name+" rate limit exceeded", err)
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "permission denied"):
		return WrapError(ErrCodeAuthFailed, name+" authentication failed", err)
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return WrapError(ErrCodeModelUnavailable, name+" model not available", err)
	case isConnectionError(err):
		return WrapError(ErrCodeUnreachable, "unable to connect to "+name, err)
	default:
		return WrapError(ErrCodeProvider, name+" request failed", err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "context deadline exceeded")
}
