package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
)

var ErrUploadFailed = errors.New("upload failed")

// FakeMedia records uploads and deletes instead of calling a media host.
type FakeMedia struct {
	mu        sync.Mutex
	next      int
	uploaded  []string
	destroyed []string

	// FailPaths makes Upload fail for the listed local paths.
	FailPaths map[string]bool
	// DestroyErr is returned by every Destroy call when set.
	DestroyErr error
}

func NewFakeMedia() *FakeMedia {
	return &FakeMedia{FailPaths: make(map[string]bool)}
}

func (m *FakeMedia) Upload(_ context.Context, localPath string) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPaths[localPath] {
		return nil, ErrUploadFailed
	}
	m.next++
	m.uploaded = append(m.uploaded, localPath)
	id := fmt.Sprintf("vidtube/asset-%d", m.next)
	return &models.Asset{URL: "https://media.test/" + id + ".png", PublicID: id}, nil
}

func (m *FakeMedia) Destroy(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = append(m.destroyed, publicID)
	return m.DestroyErr
}

// Uploaded returns the local paths passed to Upload, in order.
func (m *FakeMedia) Uploaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.uploaded...)
}

// Destroyed returns the public ids passed to Destroy, in order.
func (m *FakeMedia) Destroyed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.destroyed...)
}
