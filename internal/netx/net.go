// Package netx contains small request-metadata helpers used by the
// analytics ingestion path.
package netx

import (
	"net/http"
	"net/netip"
	"strings"
	"unicode/utf8"
)

// MaxUserAgentLength bounds the user agent string stored with an event.
const MaxUserAgentLength = 512

// ClientIP returns the best-effort client address for a request: the first
// entry of X-Forwarded-For when present, then X-Real-IP, then RemoteAddr.
// The result is a bare IP without port or zone; "" when nothing parses.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if ip, ok := normalizeIP(first); ok {
			return ip
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		if ip, ok := normalizeIP(xr); ok {
			return ip
		}
	}
	if ip, ok := normalizeIP(r.RemoteAddr); ok {
		return ip
	}
	return ""
}

// normalizeIP accepts a bare IP or an address with a port
// (e.g. "192.0.2.4:1234", "[2001:db8::1]:443") and returns the canonical IP
// portion without zone identifiers.
func normalizeIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if addrPort, err := netip.ParseAddrPort(raw); err == nil {
		addr := addrPort.Addr().WithZone("")
		if addr.IsValid() {
			return addr.String(), true
		}
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		addr = addr.WithZone("")
		if addr.IsValid() {
			return addr.String(), true
		}
	}
	return "", false
}

// TruncateUserAgent trims overly long user agents to MaxUserAgentLength runes
// without splitting multi-byte characters.
func TruncateUserAgent(ua string) string {
	if utf8.RuneCountInString(ua) <= MaxUserAgentLength {
		return ua
	}
	var b strings.Builder
	b.Grow(len(ua))
	count := 0
	for _, r := range ua {
		b.WriteRune(r)
		count++
		if count >= MaxUserAgentLength {
			break
		}
	}
	return b.String()
}
