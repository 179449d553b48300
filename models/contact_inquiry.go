package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactInquiry records a message sent through the public contact form.
type ContactInquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Message   string             `bson:"message" json:"message"`
	ToEmail   string             `bson:"toEmail,omitempty" json:"toEmail,omitempty"`
	Delivered bool               `bson:"delivered" json:"delivered"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
