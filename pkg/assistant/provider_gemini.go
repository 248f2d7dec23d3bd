package assistant

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	defaultGeminiModel = "gemini-2.5-flash"
)

// geminiProvider generates responses through the Gemini API.
type geminiProvider struct {
	apiKey string
	model  string
}

func newGeminiProvider(cfg ProviderConfig) *geminiProvider {
	model := cfg.GeminiModel
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiProvider{apiKey: cfg.GeminiAPIKey, model: model}
}

func (p *geminiProvider) Name() string        { return providerNameGemini }
func (p *geminiProvider) DisplayName() string { return "Google Gemini" }
func (p *geminiProvider) IsConfigured() bool  { return p.apiKey != "" }

func (p *geminiProvider) GenerateResponse(ctx context.Context, query string, intent QueryIntent, portfolioContext string) (string, error) {
	if !p.IsConfigured() {
		return "", NewError(ErrCodeNotConfigured, "Gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", classifyProviderError(p.Name(), err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: assistantSystemPrompt}},
		},
		Temperature:     genai.Ptr(float32(providerTemperature)),
		MaxOutputTokens: providerMaxTokens,
	}
	contents := genai.Text(buildUserPrompt(portfolioContext, query))

	response, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", classifyProviderError(p.Name(), err)
	}

	content := strings.TrimSpace(response.Text())
	if content == "" {
		return "", NewError(ErrCodeUnexpectedFormat, "gemini response content is empty")
	}
	return content, nil
}
