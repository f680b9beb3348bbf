// Package memory disponibiliza a implementação do storage em memória do processo.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
)

const DefaultSweepThreshold = 1000

// Storage mantém uma janela fixa por chave durante a vida do processo.
type Storage struct {
	mu             sync.Mutex
	windows        map[string]*domain.ClientWindow
	sweepThreshold int
	now            func() time.Time
}

var _ ports.WindowStore = (*Storage)(nil)

type Option func(*Storage)

// WithSweepThreshold define o tamanho acima do qual janelas expiradas são removidas.
func WithSweepThreshold(n int) Option {
	return func(s *Storage) { s.sweepThreshold = n }
}

// WithClock substitui time.Now, útil em testes.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

func New(opts ...Option) *Storage {
	s := &Storage{
		windows:        make(map[string]*domain.ClientWindow),
		sweepThreshold: DefaultSweepThreshold,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Hit(_ context.Context, key string, maxRequests int, window time.Duration) (domain.Decision, error) {
	if key == "" {
		return domain.Decision{}, fmt.Errorf("key is required")
	}
	if maxRequests <= 0 || window <= 0 {
		return domain.Decision{}, fmt.Errorf("limit and window must be positive")
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.windows) > s.sweepThreshold {
		s.sweepLocked(now)
	}

	w, ok := s.windows[key]
	if !ok || w.Expired(now) {
		s.windows[key] = &domain.ClientWindow{Identity: key, Count: 1, ResetAt: now.Add(window)}
		return domain.Decision{Allowed: true, Remaining: maxRequests - 1, ResetIn: window, Limit: maxRequests}, nil
	}

	resetIn := w.ResetAt.Sub(now)
	if w.Count >= maxRequests {
		return domain.Decision{Allowed: false, Remaining: 0, ResetIn: resetIn, Limit: maxRequests}, nil
	}

	w.Count++
	return domain.Decision{Allowed: true, Remaining: maxRequests - w.Count, ResetIn: resetIn, Limit: maxRequests}, nil
}

// size returns the number of tracked windows, expired ones included.
func (s *Storage) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *Storage) sweepLocked(now time.Time) {
	for key, w := range s.windows {
		if w.Expired(now) {
			delete(s.windows, key)
		}
	}
}
