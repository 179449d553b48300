package store

import (
	"context"

	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactSettings returns the first settings document, or nil if none exists.
func (db *DB) ContactSettings(ctx context.Context) (*models.ContactSettings, error) {
	return findOne[models.ContactSettings](ctx, db.ContactSettingsColl(), bson.M{},
		options.FindOne().SetSort(bson.M{"_id": 1}))
}

// SaveContactSettings inserts the document when it has no id yet, otherwise
// overwrites it in place.
func (db *DB) SaveContactSettings(ctx context.Context, cs *models.ContactSettings) (primitive.ObjectID, error) {
	if cs.ID.IsZero() {
		res, err := db.ContactSettingsColl().InsertOne(ctx, cs)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return res.InsertedID.(primitive.ObjectID), nil
	}
	set := bson.M{
		"email":        cs.Email,
		"phone":        cs.Phone,
		"address":      cs.Address,
		"workingHours": cs.WorkingHours,
		"facebook":     cs.Facebook,
		"instagram":    cs.Instagram,
		"youtube":      cs.Youtube,
		"tiktok":       cs.Tiktok,
		"zalo":         cs.Zalo,
		"updatedBy":    cs.UpdatedBy,
		"updatedAt":    cs.UpdatedAt,
	}
	_, err := db.ContactSettingsColl().UpdateOne(ctx, bson.M{"_id": cs.ID}, bson.M{"$set": set})
	return cs.ID, err
}

// InsertContactInquiry records a contact form submission.
func (db *DB) InsertContactInquiry(ctx context.Context, in *models.ContactInquiry) (primitive.ObjectID, error) {
	res, err := db.ContactInquiries().InsertOne(ctx, in)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListContactInquiries(ctx context.Context, limit int) ([]models.ContactInquiry, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[models.ContactInquiry](ctx, db.ContactInquiries(), bson.M{}, opts)
}
