// Package respond padroniza respostas JSON da API.
package respond

import (
	"encoding/json"
	"net/http"
)

type ErrorBody struct {
	Error      string `json:"error"`
	RetryAfter *int   `json:"retryAfter,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

func ErrorWithRetry(w http.ResponseWriter, status int, message string, retryAfter int) {
	JSON(w, status, ErrorBody{Error: message, RetryAfter: &retryAfter})
}
