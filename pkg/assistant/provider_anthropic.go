package assistant

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	providerNameAnthropic = "anthropic"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

// anthropicProvider generates responses through the Anthropic messages API.
type anthropicProvider struct {
	apiKey string
	model  string
}

func newAnthropicProvider(cfg ProviderConfig) *anthropicProvider {
	model := cfg.AnthropicModel
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicProvider{apiKey: cfg.AnthropicAPIKey, model: model}
}

func (p *anthropicProvider) Name() string        { return providerNameAnthropic }
func (p *anthropicProvider) DisplayName() string { return "Anthropic Claude" }
func (p *anthropicProvider) IsConfigured() bool  { return p.apiKey != "" }

func (p *anthropicProvider) GenerateResponse(ctx context.Context, query string, intent QueryIntent, portfolioContext string) (string, error) {
	if !p.IsConfigured() {
		return "", NewError(ErrCodeNotConfigured, "Anthropic API key not configured")
	}

	client := anthropic.NewClient(option.WithAPIKey(p.apiKey))
	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: providerMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: assistantSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(portfolioContext, query))),
		},
		Temperature: anthropic.Float(providerTemperature),
	})
	if err != nil {
		return "", classifyProviderError(p.Name(), err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", NewError(ErrCodeUnexpectedFormat, "anthropic response content is empty")
	}
	return content, nil
}
