// Package ports define contratos que conectam o domínio a implementações externas.
package ports

import (
	"context"
	"time"

	"github.com/JeanGrijp/credibility-gateway/internal/core/domain"
)

// WindowStore executa a verificação e o incremento da janela fixa de uma chave.
// Implementações devem tornar a leitura e escrita atômicas por chave.
type WindowStore interface {
	Hit(ctx context.Context, key string, maxRequests int, window time.Duration) (domain.Decision, error)
}
