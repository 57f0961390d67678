package services

import (
	"context"
	"errors"

	"github.com/AnshRaj112/vidtube-backend/internal/config"
	"github.com/AnshRaj112/vidtube-backend/internal/models"
)

// MediaHost stores user images on a third-party host.
type MediaHost interface {
	// Upload sends the file at localPath and returns its hosted URL and public id.
	Upload(ctx context.Context, localPath string) (*models.Asset, error)
	// Destroy deletes a previously uploaded asset by public id.
	Destroy(ctx context.Context, publicID string) error
}

// NewMediaHost builds the host selected by MEDIA_PROVIDER.
func NewMediaHost(cfg *config.Config) (MediaHost, error) {
	switch cfg.MediaProvider {
	case "s3":
		s3Service, err := NewS3Service(cfg.AWSRegion, cfg.S3Bucket, cfg.MediaFolder)
		if err != nil {
			return nil, err
		}
		return s3Service, nil
	default:
		if cfg.CloudinaryName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			return nil, errors.New("cloudinary credentials not found")
		}
		cld, err := NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.MediaFolder)
		if err != nil {
			return nil, err
		}
		return cld, nil
	}
}
