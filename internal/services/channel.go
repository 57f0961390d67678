package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/AnshRaj112/vidtube-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelService serves the channel page, watch history and subscriptions.
type ChannelService struct {
	store ChannelStore
}

func NewChannelService(store ChannelStore) *ChannelService {
	return &ChannelService{store: store}
}

// GetChannelProfile looks up a channel by username. viewer is nil for
// anonymous requests, in which case IsSubscribed is always false.
func (c *ChannelService) GetChannelProfile(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, apierror.Validation("username is missing")
	}

	profile, err := c.store.ChannelProfile(ctx, username, viewer)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.NotFound("Channel does not exist")
		}
		return nil, apierror.Internal("Failed to fetch channel", err)
	}
	return profile, nil
}

// GetWatchHistory returns the user's watched videos in watch order.
func (c *ChannelService) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]models.WatchedVideo, error) {
	videos, err := c.store.WatchHistory(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, apierror.Internal("Failed to fetch watch history", err)
	}
	if videos == nil {
		videos = []models.WatchedVideo{}
	}
	return videos, nil
}

// ToggleSubscription subscribes to channelID, or unsubscribes if already
// subscribed, and reports the resulting state.
func (c *ChannelService) ToggleSubscription(ctx context.Context, subscriber primitive.ObjectID, channelID string) (bool, error) {
	channel, err := primitive.ObjectIDFromHex(strings.TrimSpace(channelID))
	if err != nil {
		return false, apierror.Validation("Invalid channel id")
	}
	if channel == subscriber {
		return false, apierror.Validation("You cannot subscribe to your own channel")
	}

	if _, err := c.store.FindUserByID(ctx, channel); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, apierror.NotFound("Channel does not exist")
		}
		return false, apierror.Internal("Failed to look up channel", err)
	}

	subscribed, err := c.store.ToggleSubscription(ctx, subscriber, channel)
	if err != nil {
		return false, apierror.Internal("Failed to update subscription", err)
	}
	return subscribed, nil
}
