// Package auth verifica credenciais bearer junto ao provedor de identidade.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JeanGrijp/credibility-gateway/internal/cache"
	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
)

const userPath = "/auth/v1/user"

var ErrProviderNotConfigured = errors.New("identity provider not configured")

type Config struct {
	BaseURL  string
	AnonKey  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Authenticator consulta o provedor de identidade sobre o dono de um token bearer.
// Qualquer falha resulta em não verificado, tratado como anônimo.
type Authenticator struct {
	client   *http.Client
	userURL  string
	anonKey  string
	timeout  time.Duration
	cacheTTL time.Duration
	verified cache.Cache[string, struct{}]
}

var _ ports.Authenticator = (*Authenticator)(nil)

func New(cfg Config, client *http.Client) *Authenticator {
	if client == nil {
		client = http.DefaultClient
	}

	a := &Authenticator{
		client:   client,
		anonKey:  strings.TrimSpace(cfg.AnonKey),
		timeout:  cfg.Timeout,
		cacheTTL: cfg.CacheTTL,
		verified: cache.NoopCache[string, struct{}]{},
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		a.userURL = base + userPath
	}
	if cfg.CacheTTL > 0 {
		a.verified = cache.NewTTLCache[string, struct{}]()
	}
	return a
}

func (a *Authenticator) Authenticate(ctx context.Context, token string) domain.AuthResult {
	token = strings.TrimSpace(token)
	if token == "" || (a.anonKey != "" && token == a.anonKey) {
		return domain.AuthResult{Status: domain.AuthAnonymous}
	}
	if a.userURL == "" {
		return domain.AuthResult{Status: domain.AuthUnverified, Err: ErrProviderNotConfigured}
	}

	fingerprint := tokenFingerprint(token)
	if _, ok := a.verified.Get(fingerprint); ok {
		return domain.AuthResult{Status: domain.AuthAuthenticated}
	}

	if err := a.verify(ctx, token); err != nil {
		return domain.AuthResult{Status: domain.AuthUnverified, Err: err}
	}

	a.verified.Set(fingerprint, struct{}{}, a.cacheTTL)
	return domain.AuthResult{Status: domain.AuthAuthenticated}
}

func (a *Authenticator) verify(ctx context.Context, token string) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userURL, nil)
	if err != nil {
		return fmt.Errorf("build verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", a.anonKey)

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("verify token: %w", domain.ErrUpstreamTimeout)
		}
		return fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}
	return nil
}

func tokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
