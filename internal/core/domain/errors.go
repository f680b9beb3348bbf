package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited = errors.New("rate limit exceeded")

	ErrInvalidBody    = errors.New("request body must be a JSON object")
	ErrMissingContent = errors.New("content is required and must be a string")
	ErrInvalidKind    = errors.New("invalid content type")
	ErrTooLong        = errors.New("content exceeds maximum length")
	ErrMalformedURL   = errors.New("invalid url format")
	ErrEmptyContent   = errors.New("content cannot be empty")

	ErrNotConfigured         = errors.New("analysis service not configured")
	ErrUpstreamRateLimited   = errors.New("upstream rate limit exceeded")
	ErrUpstreamQuota         = errors.New("upstream quota exceeded")
	ErrUpstreamFailure       = errors.New("upstream request failed")
	ErrUpstreamTimeout       = errors.New("upstream request timed out")
	ErrEmptyUpstreamResponse = errors.New("upstream returned no content")
	ErrUnparsableResult      = errors.New("upstream result could not be parsed")
)

var validationErrors = []error{
	ErrInvalidBody,
	ErrMissingContent,
	ErrInvalidKind,
	ErrTooLong,
	ErrMalformedURL,
	ErrEmptyContent,
}

// TooLongError informa qual limite de tamanho o conteúdo excedeu.
type TooLongError struct {
	Kind  Kind
	Limit int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s: %s limit is %d characters", ErrTooLong, e.Kind, e.Limit)
}

func (e *TooLongError) Is(target error) bool {
	return target == ErrTooLong
}

// UnparsableResultError guarda a resposta bruta do serviço externo para diagnóstico.
type UnparsableResultError struct {
	Raw string
	Err error
}

func (e *UnparsableResultError) Error() string {
	if e.Err == nil {
		return ErrUnparsableResult.Error()
	}
	return fmt.Sprintf("%s: %v", ErrUnparsableResult, e.Err)
}

func (e *UnparsableResultError) Is(target error) bool {
	return target == ErrUnparsableResult
}

func (e *UnparsableResultError) Unwrap() error {
	return e.Err
}

func IsRateLimitedError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
