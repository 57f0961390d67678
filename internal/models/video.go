package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Video struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	VideoFile   string  `bson:"videoFile" json:"videoFile"`
	Thumbnail   string  `bson:"thumbnail" json:"thumbnail"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Duration    float64 `bson:"duration" json:"duration"` // seconds
	Views       int64   `bson:"views" json:"views"`
	IsPublished bool    `bson:"isPublished" json:"isPublished"`

	Owner primitive.ObjectID `bson:"owner" json:"owner"`
}

// VideoOwner is the projection of a User embedded in watch history entries.
type VideoOwner struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Username string             `bson:"username" json:"username"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// WatchedVideo is a Video with its owner denormalized.
type WatchedVideo struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	VideoFile   string  `bson:"videoFile" json:"videoFile"`
	Thumbnail   string  `bson:"thumbnail" json:"thumbnail"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Duration    float64 `bson:"duration" json:"duration"`
	Views       int64   `bson:"views" json:"views"`
	IsPublished bool    `bson:"isPublished" json:"isPublished"`

	Owner *VideoOwner `bson:"owner,omitempty" json:"owner"`
}
