package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"portfoliochat/pkg/assistant"
)

const maxChatMessageLength = 2000

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	message := strings.TrimSpace(payload.Message)
	if message == "" {
		writeErrorResponse(w, http.StatusBadRequest,
			assistant.NewError(assistant.ErrCodeInvalidInput, "message is required"))
		return
	}
	if len(message) > maxChatMessageLength {
		writeErrorResponse(w, http.StatusBadRequest,
			assistant.NewError(assistant.ErrCodeInvalidInput, "message is too long"))
		return
	}

	userMessage := assistant.NewUserMessage(message)
	assistantMessage, err := h.core.Respond(r.Context(), message)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}

	writeSuccess(w, chatResponse{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		Intent:           assistant.AnalyzeQuery(message),
	})
}

func (h *handler) getProviders(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.core.ListProviders())
}

func (h *handler) setProvider(w http.ResponseWriter, r *http.Request) {
	var payload setProviderPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	name := strings.ToLower(strings.TrimSpace(payload.Provider))
	if name == "" {
		writeErrorResponse(w, http.StatusBadRequest,
			assistant.NewError(assistant.ErrCodeInvalidInput, "provider is required"))
		return
	}
	if err := h.core.SetProvider(name); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccessWithMessage(w, "provider updated", h.core.ListProviders())
}

func (h *handler) getPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.core.GetPortfolioSummary()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, summary)
}

func (h *handler) getAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.core.GetAssets()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, assets)
}

func (h *handler) getAllocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.core.GetAllocation()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, allocation)
}

func (h *handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.core.GetSettings()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, settings)
}

func (h *handler) setSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}

	settings, err := h.core.GetSettings()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	if payload.Provider != nil {
		settings.Provider = *payload.Provider
	}
	if payload.GeminiModel != nil {
		settings.GeminiModel = *payload.GeminiModel
	}
	if payload.OpenAIModel != nil {
		settings.OpenAIModel = *payload.OpenAIModel
	}
	if payload.AnthropicModel != nil {
		settings.AnthropicModel = *payload.AnthropicModel
	}
	if payload.RestModel != nil {
		settings.RestModel = *payload.RestModel
	}

	if payload.Provider != nil {
		if err := h.core.SetProvider(strings.ToLower(strings.TrimSpace(settings.Provider))); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}
	}
	saved, err := h.core.SetSettings(settings)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccessWithMessage(w, "settings updated", saved)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return assistant.WrapError(assistant.ErrCodeInvalidInput, "invalid request body", err)
	}
	return nil
}
