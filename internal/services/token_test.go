package services

import (
	"testing"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/AnshRaj112/vidtube-backend/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "annlee",
		Email:    "ann@example.com",
		FullName: "Ann Lee",
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testutil.TestConfig(t))
	u := testUser()

	access, err := issuer.IssueAccessToken(u)
	require.NoError(t, err)
	id, err := issuer.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	refresh, err := issuer.IssueRefreshToken(u)
	require.NoError(t, err)
	id, err = issuer.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestTokenIssuer_AccessClaims(t *testing.T) {
	issuer := NewTokenIssuer(testutil.TestConfig(t))
	u := testUser()
	access, err := issuer.IssueAccessToken(u)
	require.NoError(t, err)

	var claims AccessClaims
	_, _, err = jwt.NewParser().ParseUnverified(access, &claims)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
	assert.Equal(t, "annlee", claims.Username)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "Ann Lee", claims.FullName)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuer_SecretsAreNotInterchangeable(t *testing.T) {
	issuer := NewTokenIssuer(testutil.TestConfig(t))
	u := testUser()

	access, err := issuer.IssueAccessToken(u)
	require.NoError(t, err)
	refresh, err := issuer.IssueRefreshToken(u)
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(access)
	assert.Error(t, err)
	_, err = issuer.VerifyAccessToken(refresh)
	assert.Error(t, err)
}

func TestTokenIssuer_TokensAreUnique(t *testing.T) {
	issuer := NewTokenIssuer(testutil.TestConfig(t))
	fixed := time.Now()
	issuer.now = func() time.Time { return fixed }
	u := testUser()

	a, err := issuer.IssueRefreshToken(u)
	require.NoError(t, err)
	b, err := issuer.IssueRefreshToken(u)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	cfg := testutil.TestConfig(t)
	issuer := NewTokenIssuer(cfg)
	issuer.now = func() time.Time { return time.Now().Add(-2 * cfg.AccessTokenExpiry) }
	access, err := issuer.IssueAccessToken(testUser())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.VerifyAccessToken(access)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsUnsignedToken(t *testing.T) {
	issuer := NewTokenIssuer(testutil.TestConfig(t))
	claims := AccessClaims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken(token)
	assert.Error(t, err)
}
