package api

import (
	"errors"
	"net/http"

	"portfoliochat/pkg/assistant"
)

// Response represents a successful API response with unified format.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error API response with structured information.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeSuccess writes a successful response with data.
func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Code: 0,
		Data: data,
	})
}

// writeSuccessWithMessage writes a successful response with data and message.
func writeSuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// writeErrorResponse writes an error response with proper HTTP status and error details.
func writeErrorResponse(w http.ResponseWriter, httpStatus int, err error) {
	response := ErrorResponse{
		Code:    httpStatus,
		Message: err.Error(),
	}

	var structured *assistant.Error
	if errors.As(err, &structured) {
		response.ErrorCode = string(structured.Code)
		httpStatus = mapErrorCodeToHTTPStatus(structured.Code)
		response.Code = httpStatus
	}

	// Surface the message in the request log line.
	if setter, ok := w.(interface{ SetErrorMessage(string) }); ok {
		setter.SetErrorMessage(err.Error())
	}

	writeJSON(w, httpStatus, response)
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code assistant.ErrorCode) int {
	switch code {
	case assistant.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case assistant.ErrCodeNotConfigured, assistant.ErrCodeNoProviderAvailable:
		return http.StatusServiceUnavailable
	case assistant.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case assistant.ErrCodeAuthFailed, assistant.ErrCodeModelUnavailable,
		assistant.ErrCodeUnreachable, assistant.ErrCodeUnexpectedFormat,
		assistant.ErrCodeProvider:
		return http.StatusBadGateway
	case assistant.ErrCodeDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
