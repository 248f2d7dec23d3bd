package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	providerNameRest = "rest-api"
	defaultRestModel = "llama3.2"
)

// restProvider talks to a self-hosted or third-party text-generation endpoint
// over plain HTTP. Different backends wrap the generated text in different
// envelopes, so decoding tries the known shapes in order.
type restProvider struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func newRestProvider(cfg ProviderConfig, client *http.Client) *restProvider {
	model := cfg.RestModel
	if model == "" {
		model = defaultRestModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &restProvider{
		endpoint: cfg.RestAPIURL,
		apiKey:   cfg.RestAPIKey,
		model:    model,
		client:   client,
	}
}

func (p *restProvider) Name() string        { return providerNameRest }
func (p *restProvider) DisplayName() string { return "REST API" }
func (p *restProvider) IsConfigured() bool  { return p.endpoint != "" }

type restRequest struct {
	Model   string      `json:"model"`
	Prompt  string      `json:"prompt"`
	Stream  bool        `json:"stream"`
	Options restOptions `json:"options"`
}

type restOptions struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func (p *restProvider) GenerateResponse(ctx context.Context, query string, intent QueryIntent, portfolioContext string) (string, error) {
	if !p.IsConfigured() {
		return "", NewError(ErrCodeNotConfigured, "REST API endpoint not configured")
	}

	prompt := assistantSystemPrompt + "\n\n" + buildUserPrompt(portfolioContext, query)
	payload, err := json.Marshal(restRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Options: restOptions{
			Temperature: providerTemperature,
			MaxTokens:   providerMaxTokens,
		},
	})
	if err != nil {
		return "", WrapError(ErrCodeProvider, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", WrapError(ErrCodeProvider, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", restStatusError(resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", WrapError(ErrCodeUnexpectedFormat, "response body is not valid JSON", err)
	}
	content, err := extractGeneratedText(body)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", NewError(ErrCodeUnexpectedFormat, "response contained no generated text")
	}
	return content, nil
}

func restStatusError(status int) *Error {
	switch status {
	case http.StatusTooManyRequests:
		return NewError(ErrCodeRateLimited, "rest-api rate limit exceeded")
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewError(ErrCodeAuthFailed, "rest-api authentication failed")
	case http.StatusNotFound:
		return NewError(ErrCodeModelUnavailable, "rest-api model not available")
	default:
		return NewError(ErrCodeProvider, fmt.Sprintf("rest-api returned status %d", status))
	}
}

// extractGeneratedText probes the envelope shapes produced by the common
// generation backends: Ollama-style {response}, OpenAI-compatible choices,
// {text}, Hugging Face {generated_text} as object or single-element array,
// and a bare JSON string.
func extractGeneratedText(body json.RawMessage) (string, error) {
	var object struct {
		Response string `json:"response"`
		Choices  []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Text          string `json:"text"`
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &object); err == nil {
		switch {
		case object.Response != "":
			return object.Response, nil
		case len(object.Choices) > 0 && object.Choices[0].Message.Content != "":
			return object.Choices[0].Message.Content, nil
		case object.Text != "":
			return object.Text, nil
		case object.GeneratedText != "":
			return object.GeneratedText, nil
		}
	}

	var list []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 && list[0].GeneratedText != "" {
		return list[0].GeneratedText, nil
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain, nil
	}

	return "", NewError(ErrCodeUnexpectedFormat, "unrecognized response format from rest-api")
}
