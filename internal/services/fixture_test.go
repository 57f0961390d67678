package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/vidtube-backend/internal/config"
	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/AnshRaj112/vidtube-backend/internal/testutil"
	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cfg      *config.Config
	store    *testutil.MemoryStore
	media    *testutil.FakeMedia
	queue    *MemoryCleanupQueue
	cleaner  *AssetCleaner
	tokens   *TokenIssuer
	sessions *SessionManager
	profiles *ProfileService
	channels *ChannelService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cfg:   testutil.TestConfig(t),
		store: testutil.NewMemoryStore(),
		media: testutil.NewFakeMedia(),
		queue: NewMemoryCleanupQueue(16),
	}
	f.cleaner = NewAssetCleaner(f.media, f.queue)
	f.tokens = NewTokenIssuer(f.cfg)
	f.sessions = NewSessionManager(f.store, f.tokens, f.media, f.cleaner)
	f.profiles = NewProfileService(f.store, f.media, f.cleaner)
	f.channels = NewChannelService(f.store)
	return f
}

func registerInput(username, email string) RegisterInput {
	return RegisterInput{
		FullName:   "Test User",
		Email:      email,
		Username:   username,
		Password:   "secret123",
		AvatarPath: "/tmp/" + username + "-avatar.png",
	}
}

func (f *fixture) register(t *testing.T, username, email string) *models.User {
	t.Helper()
	u, err := f.sessions.Register(context.Background(), registerInput(username, email))
	require.NoError(t, err)
	return u
}

// queued drains the cleanup queue without running the worker.
func (f *fixture) queued() []CleanupJob {
	var jobs []CleanupJob
	for {
		select {
		case job := <-f.queue.jobs:
			jobs = append(jobs, job)
		default:
			return jobs
		}
	}
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.Status, "message: %s", apiErr.Message)
	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}
}
