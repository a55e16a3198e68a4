package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostStatusPublish = "publish"
	PostStatusDraft   = "draft"
)

// Post represents a published article document
// Collection: posts
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	Status       string             `bson:"status" json:"status"`
	Title        string             `bson:"title" json:"title"`
	Link         string             `bson:"link" json:"link"`
	PublishedAt  time.Time          `bson:"published_at" json:"published_at"`
	ThumbnailURL string             `bson:"thumbnail_url" json:"thumbnail_url"`
	// CategoryIDs 는 categories._id 값 목록이다.
	CategoryIDs []int64 `bson:"category_ids" json:"category_ids"`
	Sticky      bool    `bson:"sticky" json:"sticky"`
}
