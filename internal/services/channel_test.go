package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetChannelProfile_Counts(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "annlee", "ann@example.com")
	bob := f.register(t, "bob", "bob@example.com")
	carol := f.register(t, "carol", "carol@example.com")
	ctx := context.Background()

	for _, sub := range []primitive.ObjectID{bob.ID, carol.ID} {
		on, err := f.channels.ToggleSubscription(ctx, sub, ann.ID.Hex())
		require.NoError(t, err)
		require.True(t, on)
	}
	_, err := f.channels.ToggleSubscription(ctx, ann.ID, bob.ID.Hex())
	require.NoError(t, err)

	p, err := f.channels.GetChannelProfile(ctx, "AnnLee", &bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.SubscribersCount)
	assert.Equal(t, 1, p.ChannelsSubscribedToCount)
	assert.True(t, p.IsSubscribed)
	assert.Equal(t, "ann@example.com", p.Email)

	p, err = f.channels.GetChannelProfile(ctx, "annlee", nil)
	require.NoError(t, err)
	assert.False(t, p.IsSubscribed, "anonymous viewer")

	p, err = f.channels.GetChannelProfile(ctx, "annlee", &ann.ID)
	require.NoError(t, err)
	assert.False(t, p.IsSubscribed, "owner is not subscribed to self")
}

func TestGetChannelProfile_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.channels.GetChannelProfile(ctx, "nobody", nil)
	requireAPIError(t, err, http.StatusNotFound, "Channel does not exist")

	_, err = f.channels.GetChannelProfile(ctx, "  ", nil)
	requireAPIError(t, err, http.StatusBadRequest, "")
}

func TestToggleSubscription(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "annlee", "ann@example.com")
	bob := f.register(t, "bob", "bob@example.com")
	ctx := context.Background()

	on, err := f.channels.ToggleSubscription(ctx, bob.ID, ann.ID.Hex())
	require.NoError(t, err)
	assert.True(t, on)

	on, err = f.channels.ToggleSubscription(ctx, bob.ID, ann.ID.Hex())
	require.NoError(t, err)
	assert.False(t, on)

	p, err := f.channels.GetChannelProfile(ctx, "annlee", &bob.ID)
	require.NoError(t, err)
	assert.Zero(t, p.SubscribersCount)
	assert.False(t, p.IsSubscribed)

	_, err = f.channels.ToggleSubscription(ctx, bob.ID, bob.ID.Hex())
	requireAPIError(t, err, http.StatusBadRequest, "")
	_, err = f.channels.ToggleSubscription(ctx, bob.ID, "not-an-id")
	requireAPIError(t, err, http.StatusBadRequest, "Invalid channel id")
	_, err = f.channels.ToggleSubscription(ctx, bob.ID, primitive.NewObjectID().Hex())
	requireAPIError(t, err, http.StatusNotFound, "Channel does not exist")
}

func TestGetWatchHistory_KeepsWatchOrder(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "annlee", "ann@example.com")
	bob := f.register(t, "bob", "bob@example.com")
	ctx := context.Background()

	first := f.store.AddVideo(models.Video{Title: "first", Owner: bob.ID, IsPublished: true})
	second := f.store.AddVideo(models.Video{Title: "second", Owner: ann.ID, IsPublished: true})
	for _, id := range []primitive.ObjectID{second, first, primitive.NewObjectID(), second} {
		f.store.Watch(ann.ID, id)
	}

	videos, err := f.channels.GetWatchHistory(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, videos, 3)

	titles := []string{videos[0].Title, videos[1].Title, videos[2].Title}
	assert.Equal(t, []string{"second", "first", "second"}, titles)
	require.NotNil(t, videos[1].Owner)
	assert.Equal(t, "bob", videos[1].Owner.Username)
}

func TestGetWatchHistory_EmptyIsNotNil(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "annlee", "ann@example.com")

	videos, err := f.channels.GetWatchHistory(context.Background(), ann.ID)
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}
