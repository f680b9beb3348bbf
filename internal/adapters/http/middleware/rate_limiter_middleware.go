// Package middleware disponibiliza middlewares HTTP específicos da aplicação.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/respond"
	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/logger"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/metrics"
)

const authenticatedLimitExceededMessage = "Too many requests. Please wait before trying again."

type RateLimiterOptions struct {
	Limiter       ports.RateLimiter
	Authenticator ports.Authenticator
	// Multiplier is only used to word the anonymous rejection message.
	Multiplier int
	Metrics    *metrics.Metrics
}

// Admission é a decisão do rate limiter para a requisição atual.
type Admission struct {
	Identity string
	Auth     domain.AuthResult
	Decision domain.Decision
}

type admissionKey struct{}

func AdmissionFromContext(ctx context.Context) (Admission, bool) {
	a, ok := ctx.Value(admissionKey{}).(Admission)
	return a, ok
}

// NewRateLimiterMiddleware autentica o cliente, contabiliza a requisição no
// bucket e define os cabeçalhos de cota antes de qualquer outro processamento.
// A contagem é efetivada aqui; falhas posteriores também consomem cota.
func NewRateLimiterMiddleware(opts RateLimiterOptions) func(http.Handler) http.Handler {
	anonymousMessage := "Rate limit exceeded. Sign in for more API calls!"
	if opts.Multiplier > 1 {
		anonymousMessage = fmt.Sprintf("Rate limit exceeded. Sign in for %dx more API calls!", opts.Multiplier)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := logger.FromContext(ctx)

			auth := domain.AuthResult{Status: domain.AuthAnonymous}
			if opts.Authenticator != nil {
				auth = opts.Authenticator.Authenticate(ctx, BearerToken(r))
			}
			opts.Metrics.RecordAuth(string(auth.Status))
			if auth.Status == domain.AuthUnverified {
				log.Warn("bearer token could not be verified, applying anonymous quota",
					zap.String("authorization", logger.MaskAuthorization(r.Header.Get("Authorization"))),
					zap.Error(auth.Err),
				)
			}

			identity := ClientIdentity(r)
			authenticated := auth.Authenticated()

			decision, err := opts.Limiter.CheckLimit(ctx, domain.RateLimitRequest{Identity: identity, Authenticated: authenticated})
			if err != nil && !domain.IsRateLimitedError(err) {
				log.Error("rate limiter failed", zap.String("identity", identity), zap.Error(err))
				respond.Error(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			setRateLimitHeaders(w, decision, authenticated)
			opts.Metrics.RecordAdmission(authenticated, decision.Allowed)

			if !decision.Allowed {
				log.Info("rate limit exceeded",
					zap.String("identity", identity),
					zap.Bool("authenticated", authenticated),
				)
				retryAfter := decision.ResetInSeconds()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				message := anonymousMessage
				if authenticated {
					message = authenticatedLimitExceededMessage
				}
				respond.ErrorWithRetry(w, http.StatusTooManyRequests, message, retryAfter)
				return
			}

			admission := Admission{Identity: identity, Auth: auth, Decision: decision}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, admissionKey{}, admission)))
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, d domain.Decision, authenticated bool) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	h.Set("X-RateLimit-Reset", strconv.Itoa(d.ResetInSeconds()))
	h.Set("X-RateLimit-Authenticated", strconv.FormatBool(authenticated))
}
