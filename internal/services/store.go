package services

import (
	"context"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the user persistence the session and profile services need.
// database.Store implements it against MongoDB.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserExists(ctx context.Context, username, email string) (bool, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindCredentialsByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindCredentialsByLogin(ctx context.Context, username, email string) (*models.User, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	RotateRefreshToken(ctx context.Context, id primitive.ObjectID, current, next string) error
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, asset models.Asset) (*models.User, error)
	UpdateCoverImage(ctx context.Context, id primitive.ObjectID, asset models.Asset) (*models.User, error)
}

// ChannelStore serves the read-side aggregations and the subscription edges.
type ChannelStore interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ChannelProfile(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]models.WatchedVideo, error)
	ToggleSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
}
