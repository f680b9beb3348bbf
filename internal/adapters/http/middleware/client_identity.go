package middleware

import (
	"net/http"
	"strings"
)

// ClientIdentity obtém a identidade usada no rate limit: o primeiro salto de
// X-Forwarded-For, depois X-Real-IP e, por fim, uma impressão dos cabeçalhos do
// navegador para que clientes sem IP não dividam o mesmo bucket.
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	ua := prefix(r.Header.Get("User-Agent"), 20)
	lang := prefix(r.Header.Get("Accept-Language"), 10)
	return "unknown-" + ua + "-" + lang
}

// BearerToken retorna a credencial do cabeçalho "Authorization: Bearer".
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
