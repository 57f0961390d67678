package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubAuth struct {
	tokens map[string]*models.User
}

func (s stubAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, apierror.Auth("Invalid Access Token")
}

func newStubAuth() (stubAuth, *models.User) {
	u := &models.User{ID: primitive.NewObjectID(), Username: "annlee"}
	return stubAuth{tokens: map[string]*models.User{"good": u}}, u
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	if u, ok := CurrentUser(r.Context()); ok {
		w.Write([]byte(u.Username))
		return
	}
	w.Write([]byte("anonymous"))
}

func TestAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie", "c1", "", "c1"},
		{"bearer header", "", "Bearer h1", "h1"},
		{"lowercase scheme", "", "bearer h2", "h2"},
		{"cookie wins", "c1", "Bearer h1", "c1"},
		{"basic auth ignored", "", "Basic abc", ""},
		{"none", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, AccessToken(req))
		})
	}
}

func TestVerifyJWT(t *testing.T) {
	auth, _ := newStubAuth()
	h := VerifyJWT(auth)(http.HandlerFunc(echoUser))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unauthorized request")
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid Access Token")
	})

	t.Run("valid token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"})
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "annlee", rec.Body.String())
	})
}

func TestOptionalAuth(t *testing.T) {
	auth, _ := newStubAuth()
	h := OptionalAuth(auth)(http.HandlerFunc(echoUser))

	for token, want := range map[string]string{"": "anonymous", "bad": "anonymous", "good": "annlee"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String(), "token %q", token)
	}
}
