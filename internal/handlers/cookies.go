package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/middleware"
	"github.com/AnshRaj112/vidtube-backend/internal/services"
)

func sessionCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	}
}

func setAuthCookies(w http.ResponseWriter, pair services.TokenPair) {
	http.SetCookie(w, sessionCookie(middleware.AccessTokenCookie, pair.AccessToken))
	http.SetCookie(w, sessionCookie(middleware.RefreshTokenCookie, pair.RefreshToken))
}

func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c := sessionCookie(name, "")
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}
