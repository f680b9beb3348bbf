package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientIdentity(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1", "X-Real-IP": "198.51.100.1"}, "203.0.113.7"},
		{"single forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"empty first hop falls through", map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "198.51.100.1"}, "198.51.100.1"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.1 "}, "198.51.100.1"},
		{"fingerprint", map[string]string{"User-Agent": "Mozilla/5.0 (X11; Linux x86_64)", "Accept-Language": "en-US,en;q=0.9"}, "unknown-Mozilla/5.0 (X11; Li-en-US,en;q"},
		{"short headers", map[string]string{"User-Agent": "curl/8", "Accept-Language": "pt"}, "unknown-curl/8-pt"},
		{"nothing", nil, "unknown--"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/analyze", nil)
			r.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIdentity(r); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestClientIdentity_FingerprintSeparatesBrowsers(t *testing.T) {
	a := httptest.NewRequest("POST", "/analyze", nil)
	a.Header.Set("User-Agent", "Firefox")
	b := httptest.NewRequest("POST", "/analyze", nil)
	b.Header.Set("User-Agent", "Chrome")

	if ClientIdentity(a) == ClientIdentity(b) {
		t.Fatalf("expected distinct identities for distinct browsers")
	}
	if !strings.HasPrefix(ClientIdentity(a), "unknown-") {
		t.Fatalf("expected fallback prefix")
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"Bearer abc":        "abc",
		"bearer  abc ":      "abc",
		"Basic dXNlcjpwdw==": "",
		"Bearer":            "",
		"abc":               "",
	}
	for header, want := range cases {
		r := httptest.NewRequest("POST", "/analyze", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if got := BearerToken(r); got != want {
			t.Fatalf("header %q: expected %q, got %q", header, want, got)
		}
	}
}
