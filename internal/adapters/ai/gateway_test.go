package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
)

const validResult = `{"score":72,"summary":"Mostly reliable.","findings":[{"type":"positive","text":"Cites sources"}],"sources":[{"name":"Example News","reliability":"high"}],"tips":["Check the date"]}`

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func newUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(srv *httptest.Server) *Gateway {
	return New(Config{URL: srv.URL, APIKey: "secret", Timeout: time.Second}, srv.Client())
}

var textRequest = domain.ValidatedRequest{Content: "Some article", Kind: domain.KindText}

func TestAnalyze_Success(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected authorization %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = io.WriteString(w, chatBody("```json\n"+validResult+"\n```"))
	}))
	t.Cleanup(srv.Close)

	result, err := newTestGateway(srv).Analyze(context.Background(), domain.ValidatedRequest{Content: "https://example.com/a", Kind: domain.KindURL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 72 || len(result.Findings) != 1 || result.Findings[0].Kind != domain.FindingPositive {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Sources) != 1 || result.Sources[0].Reliability != domain.ReliabilityHigh {
		t.Fatalf("unexpected sources %+v", result.Sources)
	}

	if got.Model != DefaultModel {
		t.Fatalf("expected default model, got %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != SystemPrompt {
		t.Fatalf("unexpected system message %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[1].Content, "I can only see the URL") || !strings.HasSuffix(got.Messages[1].Content, "https://example.com/a") {
		t.Fatalf("unexpected url prompt %q", got.Messages[1].Content)
	}
}

func TestAnalyze_UpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, domain.ErrUpstreamRateLimited},
		{"quota", http.StatusPaymentRequired, `{"error":"pay"}`, domain.ErrUpstreamQuota},
		{"server error", http.StatusBadGateway, `oops`, domain.ErrUpstreamFailure},
		{"bad request", http.StatusBadRequest, `bad`, domain.ErrUpstreamFailure},
		{"no choices", http.StatusOK, `{"choices":[]}`, domain.ErrEmptyUpstreamResponse},
		{"empty content", http.StatusOK, chatBody("  "), domain.ErrEmptyUpstreamResponse},
		{"non json body", http.StatusOK, `<html></html>`, domain.ErrEmptyUpstreamResponse},
		{"prose content", http.StatusOK, chatBody("I think this is fine."), domain.ErrUnparsableResult},
		{"score out of range", http.StatusOK, chatBody(`{"score":140,"summary":"","findings":[],"tips":[]}`), domain.ErrUnparsableResult},
		{"missing score", http.StatusOK, chatBody(`{"summary":"x"}`), domain.ErrUnparsableResult},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newUpstream(t, tc.status, tc.body)
			_, err := newTestGateway(srv).Analyze(context.Background(), textRequest)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAnalyze_UnparsableKeepsRawPayload(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, chatBody("not json at all"))

	_, err := newTestGateway(srv).Analyze(context.Background(), textRequest)

	var unparsable *domain.UnparsableResultError
	if !errors.As(err, &unparsable) {
		t.Fatalf("expected UnparsableResultError, got %v", err)
	}
	if unparsable.Raw != "not json at all" {
		t.Fatalf("unexpected raw payload %q", unparsable.Raw)
	}
}

func TestAnalyze_NotConfigured(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, chatBody(validResult))
	g := New(Config{URL: srv.URL}, srv.Client())

	if _, err := g.Analyze(context.Background(), textRequest); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestAnalyze_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	g := New(Config{URL: srv.URL, APIKey: "secret", Timeout: 20 * time.Millisecond}, srv.Client())
	if _, err := g.Analyze(context.Background(), textRequest); !errors.Is(err, domain.ErrUpstreamTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestParseResult_FillsEmptyCollections(t *testing.T) {
	result, err := ParseResult(`{"score":55.6,"summary":"Unclear."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 56 {
		t.Fatalf("expected rounded score 56, got %d", result.Score)
	}
	if result.Findings == nil || result.Tips == nil {
		t.Fatalf("expected non-nil findings and tips, got %+v", result)
	}
	if result.Sources != nil {
		t.Fatalf("expected sources to stay absent, got %+v", result.Sources)
	}
}

func TestParseResult_RejectsUnknownEnumValues(t *testing.T) {
	cases := map[string]string{
		"finding type":       `{"score":50,"summary":"x","findings":[{"type":"neutral","text":"t"}],"tips":[]}`,
		"missing type":       `{"score":50,"summary":"x","findings":[{"text":"t"}],"tips":[]}`,
		"source reliability": `{"score":50,"summary":"x","findings":[],"sources":[{"name":"n","reliability":"unknown"}],"tips":[]}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResult(content)
			var unparsable *domain.UnparsableResultError
			if !errors.As(err, &unparsable) {
				t.Fatalf("expected UnparsableResultError, got %v", err)
			}
			if unparsable.Raw != content {
				t.Fatalf("expected raw payload to be kept, got %q", unparsable.Raw)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	text := UserMessage(domain.ValidatedRequest{Content: "Body", Kind: domain.KindText})
	if text != "Analyze this article text for credibility:\n\nBody" {
		t.Fatalf("unexpected text prompt %q", text)
	}

	url := UserMessage(domain.ValidatedRequest{Content: "https://example.com", Kind: domain.KindURL})
	if !strings.Contains(url, "domain and URL structure") {
		t.Fatalf("unexpected url prompt %q", url)
	}
}
