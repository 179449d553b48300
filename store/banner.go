package store

import (
	"context"

	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byOrder = bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (db *DB) InsertBanner(ctx context.Context, b *models.Banner) (primitive.ObjectID, error) {
	res, err := db.Banners().InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) BannerByID(ctx context.Context, id primitive.ObjectID) (*models.Banner, error) {
	return findOne[models.Banner](ctx, db.Banners(), bson.M{"_id": id})
}

func (db *DB) ListBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, error) {
	return findAll[models.Banner](ctx, db.Banners(), bannerFilter(f), options.Find().SetSort(byOrder))
}

// ActiveBanners returns active banners for a placement ordered for display.
func (db *DB) ActiveBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, error) {
	filter := bannerFilter(f)
	filter["isActive"] = true
	return findAll[models.Banner](ctx, db.Banners(), filter, options.Find().SetSort(byOrder))
}

func (db *DB) UpdateBanner(ctx context.Context, b *models.Banner) error {
	_, err := db.Banners().UpdateOne(ctx, bson.M{"_id": b.ID}, bson.M{"$set": bannerFields(b)})
	return err
}

func (db *DB) SetBannerOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	_, err := db.Banners().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"order": order}})
	return err
}

func (db *DB) DeleteBanner(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Banners().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func bannerFilter(f models.BannerFilter) bson.M {
	filter := bson.M{}
	if f.PageType != "" {
		filter["pageType"] = f.PageType
	}
	if f.Position != "" {
		filter["position"] = f.Position
	}
	return filter
}

func bannerFields(b *models.Banner) bson.M {
	return bson.M{
		"title":          b.Title,
		"description":    b.Description,
		"image":          b.Image,
		"imageStorageId": b.ImageStorageID,
		"link":           b.Link,
		"pageType":       b.PageType,
		"position":       b.Position,
		"isActive":       b.IsActive,
		"order":          b.Order,
		"sliderGroup":    b.SliderGroup,
		"updatedAt":      b.UpdatedAt,
	}
}
