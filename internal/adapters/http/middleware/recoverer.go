package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/respond"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/logger"
)

// Recoverer converte um panic em resposta 500 com corpo JSON.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error("panic while serving request",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
