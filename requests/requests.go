package requests

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
)

func FullURL(req *http.Request) string {
	scheme := ""
	if req.TLS != nil {
		scheme = "https"
	} else {
		scheme = req.Header.Get("X-Forwarded-Proto")
		if scheme == "" {
			scheme = "http"
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.RequestURI())
}

func GetClientIP(r *http.Request) string {
	// Prefer X-Forwarded-For (first entry)
	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		parts := strings.Split(xForwardedFor, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	// Fallback to X-Real-IP
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return strings.TrimSpace(xRealIP)
	}
	// Final fallback: RemoteAddr (nginx IP)
	hostIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return hostIP
}

// QueryInt reads an integer query parameter, falling back to def
// when the parameter is absent or malformed
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// FormFloat reads a float form value, falling back to def
// when the value is absent or malformed
func FormFloat(r *http.Request, name string, def float64) float64 {
	raw := r.PostFormValue(name)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}
