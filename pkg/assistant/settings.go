package assistant

import (
	"database/sql"
	"strings"
)

const defaultSelectedProvider = "gemini"

func defaultSettings() Settings {
	return Settings{Provider: defaultSelectedProvider}
}

func normalizeSettings(settings Settings) Settings {
	normalized := settings
	normalized.Provider = strings.ToLower(strings.TrimSpace(normalized.Provider))
	if normalized.Provider == "" {
		normalized.Provider = defaultSelectedProvider
	}
	normalized.GeminiModel = strings.TrimSpace(normalized.GeminiModel)
	normalized.OpenAIModel = strings.TrimSpace(normalized.OpenAIModel)
	normalized.AnthropicModel = strings.TrimSpace(normalized.AnthropicModel)
	normalized.RestModel = strings.TrimSpace(normalized.RestModel)
	return normalized
}

// GetSettings returns persisted assistant settings (API keys are never stored).
func (c *Core) GetSettings() (Settings, error) {
	settings := defaultSettings()

	err := c.db.QueryRow(`
		SELECT provider, gemini_model, openai_model, anthropic_model, rest_model
		FROM assistant_settings
		WHERE id = 1
	`).Scan(
		&settings.Provider,
		&settings.GeminiModel,
		&settings.OpenAIModel,
		&settings.AnthropicModel,
		&settings.RestModel,
	)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return Settings{}, WrapError(ErrCodeDatabase, "load assistant settings", err)
	}
	return normalizeSettings(settings), nil
}

// SetSettings persists assistant settings (API keys are never stored).
func (c *Core) SetSettings(settings Settings) (Settings, error) {
	normalized := normalizeSettings(settings)

	_, err := c.db.Exec(`
		INSERT INTO assistant_settings (
			id, provider, gemini_model, openai_model, anthropic_model, rest_model, updated_at
		)
		VALUES (1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			provider = excluded.provider,
			gemini_model = excluded.gemini_model,
			openai_model = excluded.openai_model,
			anthropic_model = excluded.anthropic_model,
			rest_model = excluded.rest_model,
			updated_at = CURRENT_TIMESTAMP
	`, normalized.Provider, normalized.GeminiModel, normalized.OpenAIModel, normalized.AnthropicModel, normalized.RestModel)
	if err != nil {
		return Settings{}, WrapError(ErrCodeDatabase, "save assistant settings", err)
	}
	return normalized, nil
}

// applyModelOverrides layers persisted model choices over the environment
// configuration.
func applyModelOverrides(cfg ProviderConfig, settings Settings) ProviderConfig {
	if settings.GeminiModel != "" {
		cfg.GeminiModel = settings.GeminiModel
	}
	if settings.OpenAIModel != "" {
		cfg.OpenAIModel = settings.OpenAIModel
	}
	if settings.AnthropicModel != "" {
		cfg.AnthropicModel = settings.AnthropicModel
	}
	if settings.RestModel != "" {
		cfg.RestModel = settings.RestModel
	}
	return cfg
}
