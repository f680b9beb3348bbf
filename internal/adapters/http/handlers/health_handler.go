// Package handlers agrupa os handlers HTTP da API de análise.
package handlers

import (
	"net/http"

	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/respond"
)

// HealthHandler informa que o processo está atendendo.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PreflightHandler responde requisições de preflight CORS sem corpo; os
// cabeçalhos já foram definidos pelo middleware de CORS.
func PreflightHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// NotFoundHandler responde rotas desconhecidas com corpo JSON.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowedHandler responde métodos não suportados com corpo JSON.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
