package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type edge struct {
	subscriber primitive.ObjectID
	channel    primitive.ObjectID
}

// MemoryStore is an in-memory stand-in for database.Store with the same
// uniqueness, projection and compare-and-swap behaviour.
type MemoryStore struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]*models.User
	videos        map[primitive.ObjectID]*models.Video
	subscriptions []edge

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[primitive.ObjectID]*models.User),
		videos: make(map[primitive.ObjectID]*models.Video),
	}
}

func copyUser(u *models.User) *models.User {
	out := *u
	out.WatchHistory = append([]primitive.ObjectID{}, u.WatchHistory...)
	return &out
}

func public(u *models.User) *models.User {
	out := copyUser(u)
	out.Password = ""
	out.RefreshToken = ""
	return out
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return models.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.WatchHistory == nil {
		u.WatchHistory = []primitive.ObjectID{}
	}
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *MemoryStore) UserExists(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return public(u), nil
}

func (s *MemoryStore) FindCredentialsByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) FindCredentialsByLogin(_ context.Context, username, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return copyUser(u), nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) SetRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	return s.update(id, func(u *models.User) error {
		u.RefreshToken = token
		return nil
	})
}

func (s *MemoryStore) RotateRefreshToken(_ context.Context, id primitive.ObjectID, current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok || u.RefreshToken != current {
		return models.ErrStaleToken
	}
	u.RefreshToken = next
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) ClearRefreshToken(_ context.Context, id primitive.ObjectID) error {
	return s.update(id, func(u *models.User) error {
		u.RefreshToken = ""
		return nil
	})
}

func (s *MemoryStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	return s.update(id, func(u *models.User) error {
		u.Password = hash
		return nil
	})
}

func (s *MemoryStore) UpdateAccount(_ context.Context, id primitive.ObjectID, fullName, email string) (*models.User, error) {
	return s.updateAndReturn(id, func(u *models.User) error {
		for otherID, other := range s.users {
			if otherID != id && other.Email == email {
				return models.ErrDuplicate
			}
		}
		u.FullName = fullName
		u.Email = email
		return nil
	})
}

func (s *MemoryStore) UpdateAvatar(_ context.Context, id primitive.ObjectID, asset models.Asset) (*models.User, error) {
	return s.updateAndReturn(id, func(u *models.User) error {
		u.Avatar, u.AvatarID = asset.URL, asset.PublicID
		return nil
	})
}

func (s *MemoryStore) UpdateCoverImage(_ context.Context, id primitive.ObjectID, asset models.Asset) (*models.User, error) {
	return s.updateAndReturn(id, func(u *models.User) error {
		u.CoverImage, u.CoverImageID = asset.URL, asset.PublicID
		return nil
	})
}

func (s *MemoryStore) update(id primitive.ObjectID, fn func(*models.User) error) error {
	_, err := s.updateAndReturn(id, fn)
	return err
}

func (s *MemoryStore) updateAndReturn(id primitive.ObjectID, fn func(*models.User) error) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now().UTC()
	return public(u), nil
}

func (s *MemoryStore) ChannelProfile(_ context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		p := &models.ChannelProfile{
			ID:         u.ID,
			FullName:   u.FullName,
			Username:   u.Username,
			Email:      u.Email,
			Avatar:     u.Avatar,
			CoverImage: u.CoverImage,
		}
		for _, e := range s.subscriptions {
			if e.channel == u.ID {
				p.SubscribersCount++
				if viewer != nil && e.subscriber == *viewer {
					p.IsSubscribed = true
				}
			}
			if e.subscriber == u.ID {
				p.ChannelsSubscribedToCount++
			}
		}
		return p, nil
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStore) WatchHistory(_ context.Context, userID primitive.ObjectID) ([]models.WatchedVideo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := make([]models.WatchedVideo, 0, len(u.WatchHistory))
	for _, id := range u.WatchHistory {
		v, ok := s.videos[id]
		if !ok {
			continue
		}
		w := models.WatchedVideo{
			ID:          v.ID,
			CreatedAt:   v.CreatedAt,
			UpdatedAt:   v.UpdatedAt,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Title:       v.Title,
			Description: v.Description,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
		}
		if owner, ok := s.users[v.Owner]; ok {
			w.Owner = &models.VideoOwner{ID: owner.ID, FullName: owner.FullName, Username: owner.Username, Avatar: owner.Avatar}
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *MemoryStore) ToggleSubscription(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for i, e := range s.subscriptions {
		if e.subscriber == subscriber && e.channel == channel {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			return false, nil
		}
	}
	s.subscriptions = append(s.subscriptions, edge{subscriber: subscriber, channel: channel})
	return true, nil
}

// Raw returns the stored document, credentials included, or nil.
func (s *MemoryStore) Raw(id primitive.ObjectID) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return copyUser(u)
}

// UserCount reports how many users are stored.
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// AddVideo stores v, assigning an id when it has none.
func (s *MemoryStore) AddVideo(v models.Video) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	s.videos[v.ID] = &v
	return v.ID
}

// Watch appends videoID to the user's watch history.
func (s *MemoryStore) Watch(userID, videoID primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.WatchHistory = append(u.WatchHistory, videoID)
	}
}
