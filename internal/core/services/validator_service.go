package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
)

const (
	MaxURLLength  = 2048
	MaxTextLength = 50000
)

// ValidatorService valida o conteúdo enviado antes de qualquer chamada externa.
type ValidatorService struct{}

var _ ports.Validator = ValidatorService{}

func NewValidatorService() ValidatorService {
	return ValidatorService{}
}

type rawAnalyzeRequest struct {
	Content json.RawMessage `json:"content"`
	Type    json.RawMessage `json:"type"`
}

// Validate executa as verificações em ordem fixa: presença e tipo do conteúdo,
// tipo da requisição, tamanho do conteúdo sem trim, formato da URL e vazio.
func (ValidatorService) Validate(rawBody []byte) (domain.ValidatedRequest, error) {
	body := bytes.TrimSpace(rawBody)
	if len(body) == 0 || body[0] != '{' {
		return domain.ValidatedRequest{}, domain.ErrInvalidBody
	}

	var raw rawAnalyzeRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.ValidatedRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidBody, err)
	}

	content, ok := decodeString(raw.Content)
	if !ok {
		return domain.ValidatedRequest{}, domain.ErrMissingContent
	}

	kind, err := resolveKind(raw.Type)
	if err != nil {
		return domain.ValidatedRequest{}, err
	}

	limit := MaxTextLength
	if kind == domain.KindURL {
		limit = MaxURLLength
	}
	if utf8.RuneCountInString(content) > limit {
		return domain.ValidatedRequest{}, &domain.TooLongError{Kind: kind, Limit: limit}
	}

	trimmed := strings.TrimSpace(content)
	if kind == domain.KindURL && !isAbsoluteURL(trimmed) {
		return domain.ValidatedRequest{}, domain.ErrMalformedURL
	}
	if trimmed == "" {
		return domain.ValidatedRequest{}, domain.ErrEmptyContent
	}

	return domain.ValidatedRequest{Content: trimmed, Kind: kind}, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// resolveKind treats an absent, null or empty type as text.
func resolveKind(raw json.RawMessage) (domain.Kind, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return domain.KindText, nil
	}
	s, ok := decodeString(raw)
	if !ok {
		return "", domain.ErrInvalidKind
	}
	if s == "" {
		return domain.KindText, nil
	}
	kind := domain.Kind(s)
	if !kind.Valid() {
		return "", domain.ErrInvalidKind
	}
	return kind, nil
}

func isAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
