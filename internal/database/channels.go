package database

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/vidtube-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChannelProfile aggregates a user with subscriber and subscription counts.
// viewer is nil for anonymous requests, in which case isSubscribed is false.
func (s *Store) ChannelProfile(ctx context.Context, username string, viewer *primitive.ObjectID) (*models.ChannelProfile, error) {
	var isSubscribed interface{} = false
	if viewer != nil {
		isSubscribed = bson.M{"$in": bson.A{*viewer, "$subscribers.subscriber"}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"username": username}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribedTo",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"subscribersCount":          bson.M{"$size": "$subscribers"},
			"channelsSubscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed":              isSubscribed,
		}}},
		{{Key: "$project", Value: bson.M{
			"fullName":                  1,
			"username":                  1,
			"subscribersCount":          1,
			"channelsSubscribedToCount": 1,
			"isSubscribed":              1,
			"avatar":                    1,
			"coverImage":                1,
			"email":                     1,
		}}},
	}

	cur, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating channel profile: %w", err)
	}
	var channels []models.ChannelProfile
	if err := cur.All(ctx, &channels); err != nil {
		return nil, fmt.Errorf("decoding channel profile: %w", err)
	}
	if len(channels) == 0 {
		return nil, models.ErrNotFound
	}
	return &channels[0], nil
}

type watchHistoryResult struct {
	WatchHistory []primitive.ObjectID  `bson:"watchHistory"`
	Videos       []models.WatchedVideo `bson:"videos"`
}

// WatchHistory resolves the user's watch history to videos with their owner
// projected to {fullName, username, avatar}, in watch-history order.
func (s *Store) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]models.WatchedVideo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         videosCollection,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "videos",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         usersCollection,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner",
					"pipeline": bson.A{
						bson.M{"$project": bson.M{"fullName": 1, "username": 1, "avatar": 1}},
					},
				}},
				bson.M{"$addFields": bson.M{"owner": bson.M{"$first": "$owner"}}},
			},
		}}},
		{{Key: "$project", Value: bson.M{"watchHistory": 1, "videos": 1}}},
	}

	cur, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating watch history: %w", err)
	}
	var results []watchHistoryResult
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding watch history: %w", err)
	}
	if len(results) == 0 {
		return nil, models.ErrNotFound
	}

	return orderByHistory(results[0].WatchHistory, results[0].Videos), nil
}

// orderByHistory lays videos out in history order. $lookup returns matches in
// collection order and once per id, so repeats are restored here; ids whose
// video no longer exists are skipped.
func orderByHistory(history []primitive.ObjectID, videos []models.WatchedVideo) []models.WatchedVideo {
	byID := make(map[primitive.ObjectID]models.WatchedVideo, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	out := make([]models.WatchedVideo, 0, len(history))
	for _, id := range history {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// ToggleSubscription removes the subscriber→channel edge if present and
// creates it otherwise. It reports whether the edge exists afterwards.
func (s *Store) ToggleSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	filter := bson.M{"subscriber": subscriber, "channel": channel}
	res, err := s.subscriptions.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("deleting subscription: %w", err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	_, err = s.subscriptions.InsertOne(ctx, models.Subscription{
		ID:         primitive.NewObjectID(),
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("inserting subscription: %w", err)
	}
	return true, nil
}
