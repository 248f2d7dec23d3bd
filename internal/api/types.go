package api

import "portfoliochat/pkg/assistant"

type chatPayload struct {
	Message string `json:"message"`
}

type chatResponse struct {
	UserMessage      assistant.ChatMessage `json:"user_message"`
	AssistantMessage assistant.ChatMessage `json:"assistant_message"`
	Intent           assistant.QueryIntent `json:"intent"`
}

type setProviderPayload struct {
	Provider string `json:"provider"`
}

type settingsPayload struct {
	Provider       *string `json:"provider"`
	GeminiModel    *string `json:"gemini_model"`
	OpenAIModel    *string `json:"openai_model"`
	AnthropicModel *string `json:"anthropic_model"`
	RestModel      *string `json:"rest_model"`
}
