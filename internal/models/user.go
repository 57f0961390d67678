package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
	FullName string `bson:"fullName" json:"fullName"`

	// Media host URLs and the public ids needed to delete them later
	Avatar       string `bson:"avatar" json:"avatar"`
	AvatarID     string `bson:"avatarId,omitempty" json:"-"`
	CoverImage   string `bson:"coverImage,omitempty" json:"coverImage"`
	CoverImageID string `bson:"coverImageId,omitempty" json:"-"`

	WatchHistory []primitive.ObjectID `bson:"watchHistory" json:"watchHistory"`

	Password     string `bson:"password,omitempty" json:"-"` // argon2id hash, never returned
	RefreshToken string `bson:"refreshToken,omitempty" json:"-"`
}

// Sanitized returns a copy of the user with credentials removed.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Password = ""
	out.RefreshToken = ""
	if out.WatchHistory == nil {
		out.WatchHistory = []primitive.ObjectID{}
	}
	return &out
}

// Asset is a file stored on the media host.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ChannelProfile is the public view of a user as a channel.
type ChannelProfile struct {
	ID                        primitive.ObjectID `bson:"_id" json:"_id"`
	FullName                  string             `bson:"fullName" json:"fullName"`
	Username                  string             `bson:"username" json:"username"`
	Email                     string             `bson:"email" json:"email"`
	Avatar                    string             `bson:"avatar" json:"avatar"`
	CoverImage                string             `bson:"coverImage" json:"coverImage"`
	SubscribersCount          int                `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int                `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed" json:"isSubscribed"`
}
