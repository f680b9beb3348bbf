package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/middleware"
	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/respond"
	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/logger"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/metrics"
)

const DefaultMaxBodyBytes int64 = 1 << 20

// AnalyzeHandler valida o conteúdo enviado e o encaminha ao analisador.
// Executa depois do middleware de rate limiting.
type AnalyzeHandler struct {
	validator    ports.Validator
	analyzer     ports.Analyzer
	metrics      *metrics.Metrics
	maxBodyBytes int64
}

func NewAnalyzeHandler(validator ports.Validator, analyzer ports.Analyzer, m *metrics.Metrics, maxBodyBytes int64) *AnalyzeHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &AnalyzeHandler{
		validator:    validator,
		analyzer:     analyzer,
		metrics:      m,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)
	if adm, ok := middleware.AdmissionFromContext(ctx); ok {
		log = log.With(zap.String("identity", adm.Identity), zap.Bool("authenticated", adm.Auth.Authenticated()))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, "Request body is too large")
			return
		}
		log.Warn("failed to read request body", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	req, err := h.validator.Validate(body)
	if err != nil {
		status, message := errorResponse(err)
		if domain.IsValidationError(err) {
			log.Info("request rejected by validation", zap.Error(err))
		} else {
			log.Error("request validation failed", zap.Error(err))
		}
		respond.Error(w, status, message)
		return
	}

	log.Info("analyzing content", zap.String("type", string(req.Kind)), zap.Int("length", len(req.Content)))

	start := time.Now()
	result, err := h.analyzer.Analyze(ctx, req)
	h.metrics.RecordAnalysis(outcomeLabel(err), time.Since(start))
	if err != nil {
		status, message := errorResponse(err)
		logAnalysisError(log, err)
		respond.Error(w, status, message)
		return
	}

	log.Info("analysis complete", zap.Int("score", result.Score))
	respond.JSON(w, http.StatusOK, result)
}

func logAnalysisError(log *zap.Logger, err error) {
	var unparsable *domain.UnparsableResultError
	switch {
	case errors.As(err, &unparsable):
		log.Error("failed to parse analysis result", zap.String("raw", unparsable.Raw), zap.Error(err))
	case errors.Is(err, domain.ErrNotConfigured):
		log.Error("analysis service not configured")
	case errors.Is(err, domain.ErrUpstreamRateLimited), errors.Is(err, domain.ErrUpstreamQuota):
		log.Warn("analysis rejected upstream", zap.Error(err))
	default:
		log.Error("analysis failed", zap.Error(err))
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		return "upstream_rate_limited"
	case errors.Is(err, domain.ErrUpstreamQuota):
		return "upstream_quota"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrEmptyUpstreamResponse):
		return "empty"
	case errors.Is(err, domain.ErrUnparsableResult):
		return "unparsable"
	default:
		return "upstream_error"
	}
}
