package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactSettings is the site-wide contact block. Only the first document found is used.
type ContactSettings struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	WorkingHours string             `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	Facebook     string             `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram    string             `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Youtube      string             `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Tiktok       string             `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	Zalo         string             `bson:"zalo,omitempty" json:"zalo,omitempty"`
	UpdatedBy    primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
