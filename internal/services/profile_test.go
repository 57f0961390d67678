package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAccountDetails(t *testing.T) {
	f := newFixture(t)
	ann := f.register(t, "annlee", "ann@example.com")
	f.register(t, "bob", "bob@example.com")
	ctx := context.Background()

	u, err := f.profiles.UpdateAccountDetails(ctx, ann.ID, "Ann Marie Lee", "  AnnMarie@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ann Marie Lee", u.FullName)
	assert.Equal(t, "annmarie@example.com", u.Email)
	assert.Empty(t, u.Password)

	_, err = f.profiles.UpdateAccountDetails(ctx, ann.ID, "", "ann@example.com")
	requireAPIError(t, err, http.StatusBadRequest, "All fields are required")

	_, err = f.profiles.UpdateAccountDetails(ctx, ann.ID, "Ann", "BOB@example.com")
	requireAPIError(t, err, http.StatusConflict, "")
	assert.Equal(t, "annmarie@example.com", f.store.Raw(ann.ID).Email)
}

func TestUpdateAvatar_PersistsThenQueuesOldAsset(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "annlee", "ann@example.com")
	oldID := f.store.Raw(u.ID).AvatarID
	ctx := context.Background()

	updated, err := f.profiles.UpdateAvatar(ctx, u.ID, "/tmp/new-avatar.png")
	require.NoError(t, err)
	assert.NotEqual(t, u.Avatar, updated.Avatar)
	assert.NotEqual(t, oldID, f.store.Raw(u.ID).AvatarID)

	jobs := f.queued()
	require.Len(t, jobs, 1)
	assert.Equal(t, oldID, jobs[0].PublicID)
	assert.Equal(t, "avatar", jobs[0].Reason)
}

func TestUpdateAvatar_Failures(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "annlee", "ann@example.com")
	ctx := context.Background()

	_, err := f.profiles.UpdateAvatar(ctx, u.ID, "")
	requireAPIError(t, err, http.StatusBadRequest, "Avatar file is missing")

	f.media.FailPaths["/tmp/bad.png"] = true
	_, err = f.profiles.UpdateAvatar(ctx, u.ID, "/tmp/bad.png")
	requireAPIError(t, err, http.StatusBadRequest, "Error while uploading avatar")

	assert.Equal(t, u.Avatar, f.store.Raw(u.ID).Avatar)
	assert.Empty(t, f.queued())
}

func TestUpdateCoverImage(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "annlee", "ann@example.com")
	ctx := context.Background()

	first, err := f.profiles.UpdateCoverImage(ctx, u.ID, "/tmp/cover1.png")
	require.NoError(t, err)
	assert.NotEmpty(t, first.CoverImage)
	assert.Empty(t, f.queued(), "no previous cover to delete")
	firstID := f.store.Raw(u.ID).CoverImageID

	_, err = f.profiles.UpdateCoverImage(ctx, u.ID, "/tmp/cover2.png")
	require.NoError(t, err)
	jobs := f.queued()
	require.Len(t, jobs, 1)
	assert.Equal(t, firstID, jobs[0].PublicID)

	_, err = f.profiles.UpdateCoverImage(ctx, u.ID, "")
	requireAPIError(t, err, http.StatusBadRequest, "Cover image file is missing")
}
