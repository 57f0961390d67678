package services

import (
	"context"
	"errors"
	"log"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/AnshRaj112/vidtube-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgInvalidAccessToken  = "Invalid Access Token"
	msgInvalidRefreshToken = "Invalid refresh Token"
	msgStaleRefreshToken   = "Refresh token is expired or used"
)

type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string // local file staged by the handler; required
	CoverImagePath string
}

type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResult struct {
	User *models.User `json:"user"`
	TokenPair
}

// SessionManager owns registration, credentials and the token lifecycle.
// A user has at most one live refresh token; logging in again or
// refreshing replaces it.
type SessionManager struct {
	store   UserStore
	tokens  *TokenIssuer
	media   MediaHost
	cleaner *AssetCleaner
}

func NewSessionManager(store UserStore, tokens *TokenIssuer, media MediaHost, cleaner *AssetCleaner) *SessionManager {
	return &SessionManager{store: store, tokens: tokens, media: media, cleaner: cleaner}
}

// Register validates in, uploads the images and creates the user. Nothing is
// written to the database until every check has passed.
func (m *SessionManager) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if utils.AnyBlank(in.FullName, in.Email, in.Username, in.Password) {
		return nil, apierror.Validation("All fields are required")
	}
	username := utils.NormalizeUsername(in.Username)
	email := utils.NormalizeEmail(in.Email)

	exists, err := m.store.UserExists(ctx, username, email)
	if err != nil {
		return nil, apierror.Internal("Failed to check existing user", err)
	}
	if exists {
		return nil, apierror.Conflict("User with email or username already exist")
	}

	if in.AvatarPath == "" {
		return nil, apierror.Validation("Avatar file is required")
	}
	avatar, err := m.media.Upload(ctx, in.AvatarPath)
	if err != nil || avatar == nil || avatar.URL == "" {
		log.Printf("ERROR [services.Register] avatar upload failed: %v", err)
		return nil, apierror.Validation("Avatar file is required")
	}

	var cover *models.Asset
	if in.CoverImagePath != "" {
		cover, err = m.media.Upload(ctx, in.CoverImagePath)
		if err != nil {
			log.Printf("ERROR [services.Register] cover image upload failed, continuing without it: %v", err)
			cover = nil
		}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		m.discardUploads(ctx, avatar, cover)
		return nil, apierror.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		FullName: in.FullName,
		Avatar:   avatar.URL,
		AvatarID: avatar.PublicID,
		Password: hash,
	}
	if cover != nil {
		user.CoverImage = cover.URL
		user.CoverImageID = cover.PublicID
	}

	if err := m.store.CreateUser(ctx, user); err != nil {
		m.discardUploads(ctx, avatar, cover)
		// lost a race with a concurrent registration
		if errors.Is(err, models.ErrDuplicate) {
			return nil, apierror.Conflict("User with email or username already exist")
		}
		return nil, apierror.Internal("Something went wrong while registering the user", err)
	}

	created, err := m.store.FindUserByID(ctx, user.ID)
	if err != nil {
		return nil, apierror.Internal("Something went wrong while registering the user", err)
	}
	return created.Sanitized(), nil
}

func (m *SessionManager) discardUploads(ctx context.Context, assets ...*models.Asset) {
	for _, a := range assets {
		if a != nil {
			m.cleaner.Enqueue(ctx, a.PublicID, "unregistered upload")
		}
	}
}

// Login checks the credentials and issues a new token pair.
func (m *SessionManager) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := utils.NormalizeUsername(in.Username)
	email := utils.NormalizeEmail(in.Email)
	if username == "" && email == "" {
		return nil, apierror.Validation("username or email is required")
	}

	user, err := m.store.FindCredentialsByLogin(ctx, username, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.NotFound("User does not exist")
		}
		return nil, apierror.Internal("Failed to look up user", err)
	}

	ok, err := utils.VerifyPassword(in.Password, user.Password)
	if err != nil {
		return nil, apierror.Internal("Failed to verify password", err)
	}
	if !ok {
		return nil, apierror.Auth("Invalid user credentials")
	}

	pair, err := m.issuePair(user)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, apierror.Internal("Failed to store refresh token", err)
	}

	return &LoginResult{User: user.Sanitized(), TokenPair: *pair}, nil
}

// Logout forgets the user's refresh token. Logging out twice is not an error.
func (m *SessionManager) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := m.store.ClearRefreshToken(ctx, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		return apierror.Internal("Failed to log out", err)
	}
	return nil
}

// Refresh exchanges a live refresh token for a new pair. The presented token
// is retired atomically, so replaying it, or racing a second refresh with it,
// fails with an AuthError.
func (m *SessionManager) Refresh(ctx context.Context, token string) (*TokenPair, error) {
	if token == "" {
		return nil, apierror.Auth("unauthorized request")
	}

	userID, err := m.tokens.VerifyRefreshToken(token)
	if err != nil {
		return nil, apierror.Auth(msgInvalidRefreshToken)
	}

	user, err := m.store.FindCredentialsByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.Auth(msgInvalidRefreshToken)
		}
		return nil, apierror.Internal("Failed to look up user", err)
	}
	if user.RefreshToken != token {
		return nil, apierror.Auth(msgStaleRefreshToken)
	}

	pair, err := m.issuePair(user)
	if err != nil {
		return nil, err
	}
	if err := m.store.RotateRefreshToken(ctx, user.ID, token, pair.RefreshToken); err != nil {
		if errors.Is(err, models.ErrStaleToken) {
			return nil, apierror.Auth(msgStaleRefreshToken)
		}
		return nil, apierror.Internal("Failed to store refresh token", err)
	}
	return pair, nil
}

func (m *SessionManager) issuePair(user *models.User) (*TokenPair, error) {
	access, err := m.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, apierror.Internal("Something went wrong while generating refresh and access token", err)
	}
	refresh, err := m.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, apierror.Internal("Something went wrong while generating refresh and access token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ChangePassword replaces the password hash once oldPassword verifies.
func (m *SessionManager) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apierror.Validation("Old and new password are required")
	}

	user, err := m.store.FindCredentialsByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return apierror.NotFound("User not found")
		}
		return apierror.Internal("Failed to look up user", err)
	}

	ok, err := utils.VerifyPassword(oldPassword, user.Password)
	if err != nil {
		return apierror.Internal("Failed to verify password", err)
	}
	if !ok {
		return apierror.Validation("Invalid old password")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apierror.Internal("Failed to hash password", err)
	}
	if err := m.store.UpdatePassword(ctx, userID, hash); err != nil {
		return apierror.Internal("Failed to update password", err)
	}
	return nil
}

func (m *SessionManager) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := m.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, apierror.Internal("Failed to look up user", err)
	}
	return user.Sanitized(), nil
}

// Authenticate resolves an access token to the public user it was issued to.
func (m *SessionManager) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, apierror.Auth("Unauthorized request")
	}
	userID, err := m.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, apierror.Auth(msgInvalidAccessToken)
	}
	user, err := m.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.Auth(msgInvalidAccessToken)
		}
		return nil, apierror.Internal("Failed to look up user", err)
	}
	return user.Sanitized(), nil
}
