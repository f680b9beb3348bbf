package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
)

// Config agrega os limites utilizados pelo serviço de rate limiting.
type Config struct {
	AnonymousRule           domain.RateLimitRule
	AuthenticatedMultiplier int
}

// AuthenticatedRule deriva a cota autenticada a partir da anônima.
func (c Config) AuthenticatedRule() domain.RateLimitRule {
	return domain.RateLimitRule{
		Requests: c.AnonymousRule.Requests * c.AuthenticatedMultiplier,
		Window:   c.AnonymousRule.Window,
	}
}

// RateLimiterService implementa a lógica central de rate limiting.
type RateLimiterService struct {
	storage ports.WindowStore
	config  Config
}

var _ ports.RateLimiter = (*RateLimiterService)(nil)

// NewRateLimiterService cria uma nova instância do serviço.
func NewRateLimiterService(storage ports.WindowStore, cfg Config) (*RateLimiterService, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if cfg.AnonymousRule.Requests <= 0 || cfg.AnonymousRule.Window <= 0 {
		return nil, fmt.Errorf("anonymous rule must have positive values")
	}
	if cfg.AuthenticatedMultiplier <= 0 {
		return nil, fmt.Errorf("authenticated multiplier must be positive")
	}

	return &RateLimiterService{storage: storage, config: cfg}, nil
}

// Config expõe as cotas aplicadas pelo serviço.
func (s *RateLimiterService) Config() Config {
	return s.config
}

// CheckLimit contabiliza a requisição no bucket do cliente. Uma requisição
// negada retorna a decisão junto com domain.ErrRateLimited.
func (s *RateLimiterService) CheckLimit(ctx context.Context, req domain.RateLimitRequest) (domain.Decision, error) {
	identity := strings.TrimSpace(req.Identity)
	if identity == "" {
		return domain.Decision{}, fmt.Errorf("identity is required")
	}

	rule := s.config.AnonymousRule
	if req.Authenticated {
		rule = s.config.AuthenticatedRule()
	}

	decision, err := s.storage.Hit(ctx, BucketKey(identity, req.Authenticated), rule.Requests, rule.Window)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("check rate limit: %w", err)
	}
	if !decision.Allowed {
		return decision, domain.ErrRateLimited
	}
	return decision, nil
}

// BucketKey separa as identidades por classe de cliente; os contadores
// anônimo e autenticado de um mesmo cliente nunca se misturam.
func BucketKey(identity string, authenticated bool) string {
	prefix := "anon"
	if authenticated {
		prefix = "auth"
	}
	return fmt.Sprintf("ratelimit:%s:%s", prefix, identity)
}
