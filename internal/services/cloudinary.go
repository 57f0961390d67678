package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld:    cld,
		folder: folder,
	}, nil
}

func (s *CloudinaryService) Upload(ctx context.Context, localPath string) (*models.Asset, error) {
	if localPath == "" {
		return nil, errors.New("no file to upload")
	}

	// Cloudinary reads local paths itself
	result, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}

	return &models.Asset{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *CloudinaryService) Destroy(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete %s from Cloudinary: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected delete of %s: %s", publicID, result.Error.Message)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary delete of %s returned %q", publicID, result.Result)
	}
	return nil
}
