package middleware

import (
	"net/http"
	"strings"
)

var exposedHeaders = []string{
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Reset",
	"X-RateLimit-Authenticated",
	"Retry-After",
	"X-Request-ID",
}

// CORS define os cabeçalhos permissivos em toda resposta, inclusive de erro.
func CORS(next http.Handler) http.Handler {
	exposed := strings.Join(exposedHeaders, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Set("Access-Control-Expose-Headers", exposed)
		next.ServeHTTP(w, r)
	})
}
