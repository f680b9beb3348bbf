// Package ai encaminha conteúdo validado ao serviço de IA e normaliza as respostas.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
)

const (
	DefaultURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel = "google/gemini-2.5-flash"

	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

var codeFence = regexp.MustCompile("```json\\n?|\\n?```")

type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gateway conversa com um endpoint de chat completions compatível com OpenAI.
// Nenhuma chamada é repetida; toda falha vira um dos erros de upstream do domínio.
type Gateway struct {
	client  *http.Client
	url     string
	apiKey  string
	model   string
	timeout time.Duration
}

var _ ports.Analyzer = (*Gateway)(nil)

func New(cfg Config, client *http.Client) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	g := &Gateway{
		client:  client,
		url:     strings.TrimSpace(cfg.URL),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   strings.TrimSpace(cfg.Model),
		timeout: cfg.Timeout,
	}
	if g.url == "" {
		g.url = DefaultURL
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	return g
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Gateway) Analyze(ctx context.Context, req domain.ValidatedRequest) (domain.AnalysisResult, error) {
	if g.apiKey == "" {
		return domain.AnalysisResult{}, domain.ErrNotConfigured
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: UserMessage(req)},
		},
	})
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.AnalysisResult{}, domain.ErrUpstreamTimeout
		}
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.AnalysisResult{}, domain.ErrUpstreamTimeout
		}
		return domain.AnalysisResult{}, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.AnalysisResult{}, domain.ErrUpstreamRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return domain.AnalysisResult{}, domain.ErrUpstreamQuota
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.AnalysisResult{}, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, truncate(string(body), maxErrorBody))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil || len(chat.Choices) == 0 {
		return domain.AnalysisResult{}, domain.ErrEmptyUpstreamResponse
	}
	content := chat.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return domain.AnalysisResult{}, domain.ErrEmptyUpstreamResponse
	}

	return ParseResult(content)
}

type rawResult struct {
	Score    *float64         `json:"score"`
	Summary  string           `json:"summary"`
	Findings []domain.Finding `json:"findings"`
	Sources  []domain.Source  `json:"sources"`
	Tips     []string         `json:"tips"`
}

// ParseResult decodifica a saída do modelo após remover blocos de código markdown.
func ParseResult(content string) (domain.AnalysisResult, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(content, ""))

	var raw rawResult
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return domain.AnalysisResult{}, &domain.UnparsableResultError{Raw: content, Err: err}
	}
	if raw.Score == nil {
		return domain.AnalysisResult{}, &domain.UnparsableResultError{Raw: content, Err: errors.New("missing score")}
	}
	score := int(math.Round(*raw.Score))
	if score < 0 || score > 100 {
		return domain.AnalysisResult{}, &domain.UnparsableResultError{Raw: content, Err: fmt.Errorf("score %d out of range", score)}
	}

	for _, f := range raw.Findings {
		if !f.Kind.Valid() {
			return domain.AnalysisResult{}, &domain.UnparsableResultError{Raw: content, Err: fmt.Errorf("unknown finding type %q", f.Kind)}
		}
	}
	for _, src := range raw.Sources {
		if !src.Reliability.Valid() {
			return domain.AnalysisResult{}, &domain.UnparsableResultError{Raw: content, Err: fmt.Errorf("unknown source reliability %q", src.Reliability)}
		}
	}

	result := domain.AnalysisResult{
		Score:    score,
		Summary:  raw.Summary,
		Findings: raw.Findings,
		Sources:  raw.Sources,
		Tips:     raw.Tips,
	}
	if result.Findings == nil {
		result.Findings = []domain.Finding{}
	}
	if result.Tips == nil {
		result.Tips = []string{}
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
