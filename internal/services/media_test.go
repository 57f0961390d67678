package services

import (
	"testing"

	"github.com/AnshRaj112/vidtube-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMediaHost(t *testing.T) {
	cfg := testutil.TestConfig(t)

	_, err := NewMediaHost(cfg)
	assert.Error(t, err, "cloudinary without credentials")

	cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret = "demo", "key", "secret"
	host, err := NewMediaHost(cfg)
	require.NoError(t, err)
	assert.IsType(t, &CloudinaryService{}, host)

	cfg.MediaProvider = "s3"
	_, err = NewMediaHost(cfg)
	assert.Error(t, err, "s3 without a bucket")

	cfg.AWSRegion, cfg.S3Bucket = "us-east-1", "vidtube-media"
	host, err = NewMediaHost(cfg)
	require.NoError(t, err)
	assert.IsType(t, &S3Service{}, host)
}
