package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/config"
	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessClaims is the access token payload.
type AccessClaims struct {
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims is the refresh token payload; it carries the identity only.
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies access and refresh tokens with separate secrets.
type TokenIssuer struct {
	accessSecret  []byte
	accessExpiry  time.Duration
	refreshSecret []byte
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		refreshExpiry: cfg.RefreshTokenExpiry,
		now:           time.Now,
	}
}

func (t *TokenIssuer) registered(expiry time.Duration) jwt.RegisteredClaims {
	now := t.now()
	return jwt.RegisteredClaims{
		// jti keeps tokens minted within the same second distinct
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	}
}

func (t *TokenIssuer) IssueAccessToken(u *models.User) (string, error) {
	claims := AccessClaims{
		UserID:           u.ID.Hex(),
		Email:            u.Email,
		Username:         u.Username,
		FullName:         u.FullName,
		RegisteredClaims: t.registered(t.accessExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.accessSecret)
}

func (t *TokenIssuer) IssueRefreshToken(u *models.User) (string, error) {
	claims := RefreshClaims{
		UserID:           u.ID.Hex(),
		RegisteredClaims: t.registered(t.refreshExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.refreshSecret)
}

// VerifyAccessToken checks signature and expiry and returns the user id.
func (t *TokenIssuer) VerifyAccessToken(token string) (primitive.ObjectID, error) {
	var claims AccessClaims
	if err := t.parse(token, &claims, t.accessSecret); err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}

func (t *TokenIssuer) VerifyRefreshToken(token string) (primitive.ObjectID, error) {
	var claims RefreshClaims
	if err := t.parse(token, &claims, t.refreshSecret); err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}

func (t *TokenIssuer) parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New("invalid token")
	}
	return nil
}
