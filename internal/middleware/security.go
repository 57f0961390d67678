package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/AnshRaj112/vidtube-backend/pkg/response"
)

// SecurityHeaders sets security-related response headers. The API only
// serves JSON, so the CSP denies everything.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// HostCheck answers 403 when the request Host is not allowedHost. An empty
// allowedHost disables the check.
func HostCheck(allowedHost string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedHost == "" {
				next.ServeHTTP(w, r)
				return
			}
			reqHost := r.Host
			if host, _, err := net.SplitHostPort(reqHost); err == nil {
				reqHost = host
			}
			if !strings.EqualFold(strings.TrimSpace(reqHost), allowedHost) {
				response.Error(w, r, apierror.New(http.StatusForbidden, "Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Hostname extracts the bare host from a HOST value such as
// "https://api.example.com:443".
func Hostname(hostURL string) string {
	hostURL = strings.TrimSpace(hostURL)
	if hostURL == "" {
		return ""
	}
	if !strings.Contains(hostURL, "://") {
		hostURL = "http://" + hostURL
	}
	u, err := url.Parse(hostURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
