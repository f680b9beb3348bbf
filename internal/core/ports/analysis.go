package ports

import (
	"context"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) domain.AuthResult
}

type Validator interface {
	Validate(rawBody []byte) (domain.ValidatedRequest, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, req domain.ValidatedRequest) (domain.AnalysisResult, error)
}
