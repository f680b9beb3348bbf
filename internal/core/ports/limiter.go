// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
)

type RateLimiter interface {
	CheckLimit(ctx context.Context, req domain.RateLimitRequest) (domain.Decision, error)
}
