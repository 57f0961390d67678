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

// ProfileService edits the account fields a signed-in user controls.
type ProfileService struct {
	store   UserStore
	media   MediaHost
	cleaner *AssetCleaner
}

func NewProfileService(store UserStore, media MediaHost, cleaner *AssetCleaner) *ProfileService {
	return &ProfileService{store: store, media: media, cleaner: cleaner}
}

func (p *ProfileService) UpdateAccountDetails(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*models.User, error) {
	if utils.AnyBlank(fullName, email) {
		return nil, apierror.Validation("All fields are required")
	}

	user, err := p.store.UpdateAccount(ctx, userID, fullName, utils.NormalizeEmail(email))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicate):
			return nil, apierror.Conflict("Email is already in use")
		case errors.Is(err, models.ErrNotFound):
			return nil, apierror.NotFound("User not found")
		}
		return nil, apierror.Internal("Failed to update account details", err)
	}
	return user.Sanitized(), nil
}

func (p *ProfileService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*models.User, error) {
	return p.replaceImage(ctx, userID, localPath, imageSlot{
		name:     "avatar",
		missing:  "Avatar file is missing",
		failed:   "Error while uploading avatar",
		previous: func(u *models.User) string { return u.AvatarID },
		save:     p.store.UpdateAvatar,
	})
}

func (p *ProfileService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*models.User, error) {
	return p.replaceImage(ctx, userID, localPath, imageSlot{
		name:     "cover image",
		missing:  "Cover image file is missing",
		failed:   "Error while uploading cover image",
		previous: func(u *models.User) string { return u.CoverImageID },
		save:     p.store.UpdateCoverImage,
	})
}

type imageSlot struct {
	name     string
	missing  string
	failed   string
	previous func(*models.User) string
	save     func(context.Context, primitive.ObjectID, models.Asset) (*models.User, error)
}

// replaceImage uploads the new file, points the user at it, and only then
// queues the old asset for deletion. A failed delete leaves an orphan on the
// media host, never a user without an image.
func (p *ProfileService) replaceImage(ctx context.Context, userID primitive.ObjectID, localPath string, slot imageSlot) (*models.User, error) {
	if localPath == "" {
		return nil, apierror.Validation(slot.missing)
	}

	current, err := p.store.FindCredentialsByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, apierror.Internal("Failed to look up user", err)
	}
	oldID := slot.previous(current)

	asset, err := p.media.Upload(ctx, localPath)
	if err != nil || asset == nil || asset.URL == "" || asset.PublicID == "" {
		log.Printf("ERROR [services.ProfileService] %s upload failed: %v", slot.name, err)
		return nil, apierror.Validation(slot.failed)
	}

	user, err := slot.save(ctx, userID, *asset)
	if err != nil {
		p.cleaner.Enqueue(ctx, asset.PublicID, "unsaved "+slot.name)
		if errors.Is(err, models.ErrNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, apierror.Internal("Failed to update "+slot.name, err)
	}

	if oldID != "" && oldID != asset.PublicID {
		p.cleaner.Enqueue(ctx, oldID, slot.name)
	}
	return user.Sanitized(), nil
}
