package models

import "time"

// Category is a taxonomy term posts are filed under.
// Collection: categories
//
// IDs are numeric so block attributes can refer to them as numeric strings.
type Category struct {
	ID        int64     `bson:"_id" json:"id" yaml:"id"`
	Name      string    `bson:"name" json:"name" yaml:"name"`
	Slug      string    `bson:"slug" json:"slug" yaml:"slug"`
	CreatedAt time.Time `bson:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at" yaml:"-"`
}
