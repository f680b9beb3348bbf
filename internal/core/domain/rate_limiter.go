// Package domain concentra entidades e estruturas centrais do serviço de análise.
package domain

import "time"

// RateLimitRule descreve a cota aplicada a uma classe de cliente.
type RateLimitRule struct {
	Requests int
	Window   time.Duration
}

type RateLimitRequest struct {
	Identity      string
	Authenticated bool
}

// ClientWindow é o contador de janela fixa mantido por chave de bucket.
type ClientWindow struct {
	Identity string
	Count    int
	ResetAt  time.Time
}

// Expired indica se a janela já terminou e o contador deve recomeçar.
func (w ClientWindow) Expired(now time.Time) bool {
	return !now.Before(w.ResetAt)
}

type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

// ResetInSeconds arredonda para cima, em segundos inteiros, o tempo até o reset.
func (d Decision) ResetInSeconds() int {
	if d.ResetIn <= 0 {
		return 0
	}
	return int((d.ResetIn + time.Second - 1) / time.Second)
}
