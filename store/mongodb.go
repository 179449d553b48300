package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("duplicate key")

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	slog.Info("connected to mongodb", "db", dbName)
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Users() *mongo.Collection {
	return db.Database.Collection("users")
}

func (db *DB) Posts() *mongo.Collection {
	return db.Database.Collection("posts")
}

func (db *DB) Banners() *mongo.Collection {
	return db.Database.Collection("banners")
}

func (db *DB) MenuItems() *mongo.Collection {
	return db.Database.Collection("menu_items")
}

func (db *DB) ContactSettingsColl() *mongo.Collection {
	return db.Database.Collection("contact_settings")
}

func (db *DB) ContactInquiries() *mongo.Collection {
	return db.Database.Collection("contact_inquiries")
}

// EnsureIndexes creates the named secondary indexes. The unique ones on
// posts.slug and users.email make uniqueness a storage guarantee.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	specs := []struct {
		coll *mongo.Collection
		idx  []mongo.IndexModel
	}{
		{db.Users(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("by_email")},
			{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("by_role")},
		}},
		{db.Posts(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("by_slug")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "publishedAt", Value: -1}}, Options: options.Index().SetName("by_status")},
			{Keys: bson.D{{Key: "authorId", Value: 1}}, Options: options.Index().SetName("by_author")},
		}},
		{db.Banners(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "pageType", Value: 1}, {Key: "position", Value: 1}, {Key: "order", Value: 1}}, Options: options.Index().SetName("by_page_position")},
		}},
		{db.MenuItems(), []mongo.IndexModel{
			{Keys: bson.D{{Key: "order", Value: 1}}, Options: options.Index().SetName("by_order")},
		}},
	}
	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateMany(ctx, s.idx); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

// writeErr maps driver write errors onto store errors.
func writeErr(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// findOne returns (nil, nil) when nothing matches.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter, opts...).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
