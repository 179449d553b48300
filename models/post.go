package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	return s == PostDraft || s == PostPublished || s == PostArchived
}

type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Slug           string             `bson:"slug" json:"slug"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Content        string             `bson:"content" json:"content"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageStorageID string             `bson:"imageStorageId,omitempty" json:"imageStorageId,omitempty"`
	Status         PostStatus         `bson:"status" json:"status"`
	AuthorID       primitive.ObjectID `bson:"authorId" json:"authorId"`
	PublishedAt    *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`

	// ImageURL is computed on read and never stored.
	ImageURL string `bson:"-" json:"imageUrl,omitempty"`
}

// PostFilter narrows the admin post listing. Zero value lists everything.
type PostFilter struct {
	Status PostStatus
}

// PostPath is one entry of the static export path list.
type PostPath struct {
	Slug      string    `bson:"slug" json:"slug"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
