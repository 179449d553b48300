package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PageType string

const (
	PageHomepage   PageType = "homepage"
	PageTechnology PageType = "technology"
	PageStory      PageType = "story"
	PageNews       PageType = "news"
	PageGeneral    PageType = "general"
)

func (p PageType) Valid() bool {
	switch p {
	case PageHomepage, PageTechnology, PageStory, PageNews, PageGeneral:
		return true
	}
	return false
}

type BannerPosition string

const (
	PositionHero      BannerPosition = "hero"
	PositionSecondary BannerPosition = "secondary"
	PositionFooter    BannerPosition = "footer"
)

func (p BannerPosition) Valid() bool {
	return p == PositionHero || p == PositionSecondary || p == PositionFooter
}

type Banner struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageStorageID string             `bson:"imageStorageId,omitempty" json:"imageStorageId,omitempty"`
	Link           string             `bson:"link,omitempty" json:"link,omitempty"`
	PageType       PageType           `bson:"pageType" json:"pageType"`
	Position       BannerPosition     `bson:"position" json:"position"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	Order          int                `bson:"order" json:"order"`
	SliderGroup    string             `bson:"sliderGroup,omitempty" json:"sliderGroup,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`

	// ImageURL is computed on read and never stored.
	ImageURL string `bson:"-" json:"imageUrl,omitempty"`
}

// HasImage reports whether the banner carries either a direct URL or a stored file.
func (b *Banner) HasImage() bool {
	return b.Image != "" || b.ImageStorageID != ""
}

// BannerFilter selects banners by placement. Empty fields match everything.
type BannerFilter struct {
	PageType PageType
	Position BannerPosition
}

// SliderGroup is a named set of banners rotated together on the client.
type SliderGroup struct {
	Name    string   `json:"name"`
	Banners []Banner `json:"banners"`
}
