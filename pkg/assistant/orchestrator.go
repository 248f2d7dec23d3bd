package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const genericFailureMessage = "I'm having trouble analyzing your portfolio right now. Please try again in a moment."

// Respond runs one assistant turn: classify the query, pick a provider,
// generate a response, and assemble the chat message. Provider failures are
// absorbed into the message content; the returned error only reflects
// problems reading the portfolio itself.
//
// The provider selection is snapshotted at turn start. If the selected
// provider is unconfigured it is substituted with the registry default
// before the first call; if the call fails, one fallback to the default is
// attempted with a disclosure prefix. A fallback failure produces a generic
// message still tagged with the originally selected provider.
func (c *Core) Respond(ctx context.Context, query string) (ChatMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ChatMessage{}, NewError(ErrCodeInvalidInput, "query must not be empty")
	}

	intent := AnalyzeQuery(query)
	selectedName := c.CurrentProvider()

	provider, ok := c.registry.Get(selectedName)
	if !ok || !provider.IsConfigured() {
		fallback := c.registry.Default()
		if fallback == nil || !fallback.IsConfigured() {
			c.logger.Error("no provider available", "selected", selectedName)
			return c.assembleMessage(genericFailureMessage, selectedName, nil), nil
		}
		c.logger.Warn("selected provider not configured, using default",
			"selected", selectedName, "default", fallback.Name())
		provider = fallback
	}

	summary, assets, err := c.snapshot()
	if err != nil {
		return ChatMessage{}, err
	}
	allocation, err := c.GetAllocation()
	if err != nil {
		return ChatMessage{}, err
	}
	portfolioContext := BuildPortfolioContext(summary, assets, allocation)

	chartReq := DetectChartRequest(query)
	var chart *ChartPayload
	if chartReq.ShouldRender {
		chart = c.GenerateChart(chartReq)
	}

	content, genErr := c.generate(ctx, provider, query, intent, portfolioContext)
	if genErr == nil {
		return c.assembleMessage(content, provider.Name(), chart), nil
	}

	classified := classifyProviderError(provider.Name(), genErr)
	c.logger.Warn("provider call failed",
		"provider", provider.Name(), "code", classified.Code, "err", genErr)

	fallback := c.registry.Default()
	if fallback != nil && fallback.Name() != provider.Name() && fallback.IsConfigured() {
		fallbackContent, fbErr := c.generate(ctx, fallback, query, intent, portfolioContext)
		if fbErr == nil {
			disclosed := fmt.Sprintf("I encountered an issue with the AI service. Here's what I found using %s: %s",
				strings.ToLower(fallback.DisplayName()), fallbackContent)
			return c.assembleMessage(disclosed, fallback.Name(), chart), nil
		}
		c.logger.Error("fallback provider failed",
			"provider", fallback.Name(), "err", fbErr)
	}

	return c.assembleMessage(genericFailureMessage, selectedName, nil), nil
}

func (c *Core) generate(ctx context.Context, p Provider, query string, intent QueryIntent, portfolioContext string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return p.GenerateResponse(callCtx, query, intent, portfolioContext)
}

func (c *Core) assembleMessage(content, providerName string, chart *ChartPayload) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Provider:  providerName,
		Chart:     chart,
	}
}

// NewUserMessage wraps raw query text into a user-role chat message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
