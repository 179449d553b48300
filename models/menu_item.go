package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem is a navigation entry. IsVisible also controls the homepage section
// whose id matches an in-page href such as "#news".
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Href        string             `bson:"href" json:"href"`
	Order       int                `bson:"order" json:"order"`
	IsVisible   bool               `bson:"isVisible" json:"isVisible"`
	IsExternal  bool               `bson:"isExternal" json:"isExternal"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
