package store

import (
	"context"

	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminsCount returns the number of active users with role admin.
func (db *DB) AdminsCount(ctx context.Context) (int64, error) {
	return db.Users().CountDocuments(ctx, bson.M{
		"role":   models.RoleAdmin,
		"status": bson.M{"$ne": models.UserInactive},
	})
}

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, db.Users(), bson.M{"email": email})
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, db.Users(), bson.M{"_id": id})
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := db.Users().InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, writeErr(err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, db.Users(), bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
}

func (db *DB) UpdateUser(ctx context.Context, u *models.User) error {
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": userFields(u)})
	return writeErr(err)
}

func (db *DB) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Users().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func userFields(u *models.User) bson.M {
	return bson.M{
		"email":     u.Email,
		"name":      u.Name,
		"password":  u.Password,
		"role":      u.Role,
		"status":    u.Status,
		"updatedAt": u.UpdatedAt,
	}
}
