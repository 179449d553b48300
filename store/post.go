package store

import (
	"context"

	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertPost(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	res, err := db.Posts().InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, writeErr(err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return findOne[models.Post](ctx, db.Posts(), bson.M{"_id": id})
}

func (db *DB) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return findOne[models.Post](ctx, db.Posts(), bson.M{"slug": slug})
}

// ListPosts returns posts for the CMS, newest first.
func (db *DB) ListPosts(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	return findAll[models.Post](ctx, db.Posts(), postFilter(f), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
}

// PublishedPosts returns published posts, most recently published first.
// limit <= 0 means no limit.
func (db *DB) PublishedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[models.Post](ctx, db.Posts(), bson.M{"status": models.PostPublished}, opts)
}

// PublishedPostBySlug never returns drafts or archived posts.
func (db *DB) PublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return findOne[models.Post](ctx, db.Posts(), bson.M{"slug": slug, "status": models.PostPublished})
}

func (db *DB) PublishedPaths(ctx context.Context) ([]models.PostPath, error) {
	opts := options.Find().
		SetProjection(bson.M{"slug": 1, "updatedAt": 1}).
		SetSort(bson.M{"publishedAt": -1})
	return findAll[models.PostPath](ctx, db.Posts(), bson.M{"status": models.PostPublished}, opts)
}

func (db *DB) UpdatePost(ctx context.Context, post *models.Post) error {
	_, err := db.Posts().UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$set": postFields(post)})
	return writeErr(err)
}

func (db *DB) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Posts().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func postFilter(f models.PostFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

func postFields(p *models.Post) bson.M {
	return bson.M{
		"title":          p.Title,
		"slug":           p.Slug,
		"description":    p.Description,
		"content":        p.Content,
		"image":          p.Image,
		"imageStorageId": p.ImageStorageID,
		"status":         p.Status,
		"publishedAt":    p.PublishedAt,
		"updatedAt":      p.UpdatedAt,
	}
}
