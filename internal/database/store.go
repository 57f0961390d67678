package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	videosCollection        = "videos"
	subscriptionsCollection = "subscriptions"
)

// publicProjection strips credentials from every read that can reach a client.
var publicProjection = bson.M{"password": 0, "refreshToken": 0}

// Store is the MongoDB persistence layer for users, videos and subscriptions.
type Store struct {
	users         *mongo.Collection
	videos        *mongo.Collection
	subscriptions *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		users:         db.Collection(usersCollection),
		videos:        db.Collection(videosCollection),
		subscriptions: db.Collection(subscriptionsCollection),
	}
}

// EnsureIndexes creates the unique and lookup indexes. Called on startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.users: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("idx_username").SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("idx_email").SetUnique(true)},
			{Keys: bson.D{{Key: "fullName", Value: 1}}, Options: options.Index().SetName("idx_full_name")},
		},
		s.videos: {
			{Keys: bson.D{{Key: "owner", Value: 1}}, Options: options.Index().SetName("idx_owner")},
		},
		s.subscriptions: {
			{
				Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
				Options: options.Index().SetName("idx_subscriber_channel").SetUnique(true),
			},
			{Keys: bson.D{{Key: "channel", Value: 1}}, Options: options.Index().SetName("idx_channel")},
		},
	}

	for col, idx := range indexes {
		if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", col.Name(), err)
		}
	}
	return nil
}

// CreateUser inserts u and fills in its id and timestamps.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.WatchHistory == nil {
		u.WatchHistory = []primitive.ObjectID{}
	}

	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UserExists reports whether username or email is already registered.
func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{
		"$or": bson.A{bson.M{"username": username}, bson.M{"email": email}},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("checking existing user: %w", err)
	}
	return n > 0, nil
}

// FindUserByID returns the user without credentials.
func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(publicProjection))
}

// FindCredentialsByID returns the full document, password hash and refresh
// token included. Callers must not hand it to a client.
func (s *Store) FindCredentialsByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindCredentialsByLogin matches on whichever of username/email is non-empty.
func (s *Store) FindCredentialsByLogin(ctx context.Context, username, email string) (*models.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, models.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"$or": or})
}

// SetRefreshToken stores token as the user's only live refresh token.
func (s *Store) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return s.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"refreshToken": token, "updatedAt": time.Now().UTC()}}, models.ErrNotFound)
}

// RotateRefreshToken replaces current with next only if current is still the
// stored token, so two refreshes racing on the same token cannot both win.
func (s *Store) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, current, next string) error {
	filter := bson.M{"_id": id, "refreshToken": current}
	update := bson.M{"$set": bson.M{"refreshToken": next, "updatedAt": time.Now().UTC()}}
	return s.updateOne(ctx, filter, update, models.ErrStaleToken)
}

func (s *Store) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$unset": bson.M{"refreshToken": 1}, "$set": bson.M{"updatedAt": time.Now().UTC()}}
	return s.updateOne(ctx, bson.M{"_id": id}, update, models.ErrNotFound)
}

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now().UTC()}}, models.ErrNotFound)
}

func (s *Store) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*models.User, error) {
	return s.updateAndReturn(ctx, id, bson.M{"fullName": fullName, "email": email})
}

func (s *Store) UpdateAvatar(ctx context.Context, id primitive.ObjectID, asset models.Asset) (*models.User, error) {
	return s.updateAndReturn(ctx, id, bson.M{"avatar": asset.URL, "avatarId": asset.PublicID})
}

func (s *Store) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, asset models.Asset) (*models.User, error) {
	return s.updateAndReturn(ctx, id, bson.M{"coverImage": asset.URL, "coverImageId": asset.PublicID})
}

func (s *Store) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, filter, opts...).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &u, nil
}

func (s *Store) updateOne(ctx context.Context, filter, update bson.M, notMatched error) error {
	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if res.MatchedCount == 0 {
		return notMatched
	}
	return nil
}

func (s *Store) updateAndReturn(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(publicProjection)

	var u models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, models.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, models.ErrDuplicate
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return &u, nil
}
