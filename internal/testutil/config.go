package testutil

import (
	"testing"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/config"
)

// TestConfig returns a config with distinct secrets and a per-test upload dir.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		AccessTokenSecret:  "test-access-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenSecret: "test-refresh-secret",
		RefreshTokenExpiry: 24 * time.Hour,
		MediaProvider:      "cloudinary",
		MediaFolder:        "vidtube-test",
		UploadDir:          t.TempDir(),
		MaxUploadBytes:     5 << 20,
	}
}
