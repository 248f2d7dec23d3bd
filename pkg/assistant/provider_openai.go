package assistant

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	providerNameOpenAI = "openai"
	defaultOpenAIModel = "gpt-4o-mini"
)

// openaiProvider generates responses through the OpenAI chat completions API.
type openaiProvider struct {
	apiKey string
	model  string
}

func newOpenAIProvider(cfg ProviderConfig) *openaiProvider {
	model := cfg.OpenAIModel
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiProvider{apiKey: cfg.OpenAIAPIKey, model: model}
}

func (p *openaiProvider) Name() string        { return providerNameOpenAI }
func (p *openaiProvider) DisplayName() string { return "OpenAI GPT" }
func (p *openaiProvider) IsConfigured() bool  { return p.apiKey != "" }

func (p *openaiProvider) GenerateResponse(ctx context.Context, query string, intent QueryIntent, portfolioContext string) (string, error) {
	if !p.IsConfigured() {
		return "", NewError(ErrCodeNotConfigured, "OpenAI API key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(p.apiKey))
	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(assistantSystemPrompt),
			openai.UserMessage(buildUserPrompt(portfolioContext, query)),
		},
		Temperature: openai.Float(providerTemperature),
		MaxTokens:   openai.Int(providerMaxTokens),
	})
	if err != nil {
		return "", classifyProviderError(p.Name(), err)
	}

	if len(completion.Choices) == 0 {
		return "", NewError(ErrCodeUnexpectedFormat, "openai response has no choices")
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", NewError(ErrCodeUnexpectedFormat, "openai response content is empty")
	}
	return content, nil
}
