package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfoliochat/pkg/assistant"
)

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code assistant.ErrorCode
		want int
	}{
		{assistant.ErrCodeInvalidInput, http.StatusBadRequest},
		{assistant.ErrCodeNotConfigured, http.StatusServiceUnavailable},
		{assistant.ErrCodeNoProviderAvailable, http.StatusServiceUnavailable},
		{assistant.ErrCodeRateLimited, http.StatusTooManyRequests},
		{assistant.ErrCodeAuthFailed, http.StatusBadGateway},
		{assistant.ErrCodeModelUnavailable, http.StatusBadGateway},
		{assistant.ErrCodeUnreachable, http.StatusBadGateway},
		{assistant.ErrCodeUnexpectedFormat, http.StatusBadGateway},
		{assistant.ErrCodeProvider, http.StatusBadGateway},
		{assistant.ErrCodeDatabase, http.StatusInternalServerError},
		{assistant.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapErrorCodeToHTTPStatus(tt.code); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.code, tt.want, got)
		}
	}
}

func TestWriteErrorResponseStructured(t *testing.T) {
	rr := httptest.NewRecorder()
	writeErrorResponse(rr, http.StatusInternalServerError,
		assistant.NewError(assistant.ErrCodeRateLimited, "slow down"))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected remapped 429, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error_code":"RATE_LIMITED"`) {
		t.Fatalf("expected error code in body, got %s", rr.Body.String())
	}
}

func TestWriteErrorResponsePlain(t *testing.T) {
	rr := httptest.NewRecorder()
	writeErrorResponse(rr, http.StatusBadRequest, errors.New("plain failure"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected passthrough status, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "plain failure") {
		t.Fatalf("expected message in body, got %s", rr.Body.String())
	}
}
