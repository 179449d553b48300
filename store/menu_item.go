package store

import (
	"context"

	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertMenuItem(ctx context.Context, m *models.MenuItem) (primitive.ObjectID, error) {
	res, err := db.MenuItems().InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) MenuItemByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	return findOne[models.MenuItem](ctx, db.MenuItems(), bson.M{"_id": id})
}

func (db *DB) AllMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, db.MenuItems(), bson.M{}, options.Find().SetSort(byOrder))
}

func (db *DB) VisibleMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, db.MenuItems(), bson.M{"isVisible": true}, options.Find().SetSort(byOrder))
}

func (db *DB) UpdateMenuItem(ctx context.Context, m *models.MenuItem) error {
	set := bson.M{
		"title":       m.Title,
		"href":        m.Href,
		"order":       m.Order,
		"isVisible":   m.IsVisible,
		"isExternal":  m.IsExternal,
		"description": m.Description,
		"updatedAt":   m.UpdatedAt,
	}
	_, err := db.MenuItems().UpdateOne(ctx, bson.M{"_id": m.ID}, bson.M{"$set": set})
	return err
}

func (db *DB) SetMenuItemOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	_, err := db.MenuItems().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"order": order}})
	return err
}

func (db *DB) DeleteMenuItem(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.MenuItems().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
