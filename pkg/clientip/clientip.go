// Package clientip extracts the peer address used in audit log lines.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the address of the connected peer. Forwarding headers
// are ignored since the API is not deployed behind a trusted proxy; a client
// could otherwise write its own address into the audit log.
func RealClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = strings.Trim(addr, "[]")
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	if host == "" {
		return "unknown"
	}
	return host
}
