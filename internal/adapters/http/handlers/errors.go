package handlers

import (
	"errors"
	"net/http"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
)

// errorResponse maps a domain error to the status and the message shown to
// the caller. Messages never carry upstream details.
func errorResponse(err error) (int, string) {
	var tooLong *domain.TooLongError
	switch {
	case errors.As(err, &tooLong):
		if tooLong.Kind == domain.KindURL {
			return http.StatusBadRequest, "URL is too long. Maximum length is 2048 characters"
		}
		return http.StatusBadRequest, "Content is too large. Maximum length is 50,000 characters"
	case errors.Is(err, domain.ErrInvalidBody):
		return http.StatusBadRequest, "Request body must be a JSON object"
	case errors.Is(err, domain.ErrMissingContent):
		return http.StatusBadRequest, "Content is required and must be a string"
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest, `Invalid type. Must be "url" or "text"`
	case errors.Is(err, domain.ErrMalformedURL):
		return http.StatusBadRequest, "Invalid URL format"
	case errors.Is(err, domain.ErrEmptyContent):
		return http.StatusBadRequest, "Content cannot be empty"
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusInternalServerError, "AI service not configured"
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment."
	case errors.Is(err, domain.ErrUpstreamQuota):
		return http.StatusPaymentRequired, "Service quota exceeded. Please try again later."
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, "Analysis timed out. Please try again later."
	case errors.Is(err, domain.ErrEmptyUpstreamResponse):
		return http.StatusInternalServerError, "No analysis received"
	case errors.Is(err, domain.ErrUnparsableResult):
		return http.StatusInternalServerError, "Failed to parse analysis results"
	case errors.Is(err, domain.ErrUpstreamFailure):
		return http.StatusInternalServerError, "Failed to analyze content"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
