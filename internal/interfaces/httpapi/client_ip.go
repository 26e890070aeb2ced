package httpapi

import (
	"net"
	"net/http"
	"strings"
)

// resolveClientIP reads proxy headers only when trustProxyHeaders is set.
// Otherwise any client could pick its own rate limit bucket.
func resolveClientIP(r *http.Request, trustProxyHeaders bool) string {
	if trustProxyHeaders {
		for _, header := range []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"} {
			if ip := normalizeIP(r.Header.Get(header)); ip != "" {
				return ip
			}
		}
	}
	return normalizeIP(r.RemoteAddr)
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if first, _, found := strings.Cut(value, ","); found {
		value = strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = strings.TrimSpace(host)
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}
