package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCleanupQueue(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	q := NewRedisCleanupQueue(testutil.NewRedisClient(t))
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, CleanupJob{PublicID: "vidtube/a", Reason: "avatar", QueuedAt: time.Now().UTC()}))
	require.NoError(t, q.Push(ctx, CleanupJob{PublicID: "vidtube/b", Reason: "cover image"}))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	first, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vidtube/a", first.PublicID)
	assert.Equal(t, "avatar", first.Reason)

	second, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vidtube/b", second.PublicID)

	short, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = q.Pop(short)
	assert.Error(t, err)
}
