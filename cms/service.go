// Package cms implements the content rules of the site: who may edit what,
// slug uniqueness, publish stamping, ordering, and the filtered public reads.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoragePathPrefix is the public route that redirects a storage id to its file.
const StoragePathPrefix = "/api/storage/"

type UserStore interface {
	AdminsCount(ctx context.Context) (int64, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type PostStore interface {
	InsertPost(ctx context.Context, p *models.Post) (primitive.ObjectID, error)
	PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	PostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPosts(ctx context.Context, f models.PostFilter) ([]models.Post, error)
	PublishedPosts(ctx context.Context, limit int) ([]models.Post, error)
	PublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	PublishedPaths(ctx context.Context) ([]models.PostPath, error)
	UpdatePost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
}

type BannerStore interface {
	InsertBanner(ctx context.Context, b *models.Banner) (primitive.ObjectID, error)
	BannerByID(ctx context.Context, id primitive.ObjectID) (*models.Banner, error)
	ListBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, error)
	ActiveBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, error)
	UpdateBanner(ctx context.Context, b *models.Banner) error
	SetBannerOrder(ctx context.Context, id primitive.ObjectID, order int) error
	DeleteBanner(ctx context.Context, id primitive.ObjectID) error
}

type MenuStore interface {
	InsertMenuItem(ctx context.Context, m *models.MenuItem) (primitive.ObjectID, error)
	MenuItemByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	AllMenuItems(ctx context.Context) ([]models.MenuItem, error)
	VisibleMenuItems(ctx context.Context) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, m *models.MenuItem) error
	SetMenuItemOrder(ctx context.Context, id primitive.ObjectID, order int) error
	DeleteMenuItem(ctx context.Context, id primitive.ObjectID) error
}

type ContactStore interface {
	ContactSettings(ctx context.Context) (*models.ContactSettings, error)
	SaveContactSettings(ctx context.Context, cs *models.ContactSettings) (primitive.ObjectID, error)
	InsertContactInquiry(ctx context.Context, in *models.ContactInquiry) (primitive.ObjectID, error)
	ListContactInquiries(ctx context.Context, limit int) ([]models.ContactInquiry, error)
}

// Store is everything the CMS needs from the document database.
type Store interface {
	UserStore
	PostStore
	BannerStore
	MenuStore
	ContactStore
}

// FileStorage issues upload targets and resolves storage ids to URLs.
type FileStorage interface {
	PresignUpload(ctx context.Context, contentType string) (*models.UploadTicket, error)
	ResolveURL(ctx context.Context, storageID string) (string, error)
}

type Mailer interface {
	SendInquiry(ctx context.Context, in *models.ContactInquiry) error
}

type Options struct {
	Store  Store
	Files  FileStorage // optional
	Mailer Mailer      // optional
	Cache  cache.Cache // optional
	Logger *slog.Logger
	// AllowSignup lets visitors create role=user accounts.
	AllowSignup bool
	// Now overrides the clock in tests.
	Now func() time.Time
}

type Service struct {
	store       Store
	files       FileStorage
	mailer      Mailer
	cache       cache.Cache
	log         *slog.Logger
	allowSignup bool
	now         func() time.Time
}

func New(o Options) *Service {
	s := &Service{
		store:       o.Store,
		files:       o.Files,
		mailer:      o.Mailer,
		cache:       o.Cache,
		log:         o.Logger,
		allowSignup: o.AllowSignup,
		now:         o.Now,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		// Mongo keeps millisecond precision
		s.now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	}
	return s
}

// cached serves a public read from the cache, falling back to load and
// filling the cache. The generation is taken before load so a write that
// lands mid-read leaves the fill unreachable. Cache failures never fail the
// read.
func cached[T any](ctx context.Context, s *Service, group, key string, load func() (T, error)) (T, error) {
	gen, err := s.cache.Generation(ctx, group)
	if err != nil {
		s.log.Warn("cache generation failed", "group", group, "error", err)
		return load()
	}

	b, err := s.cache.Get(ctx, group, gen, key)
	if err == nil {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("cache read failed", "group", group, "key", key, "error", err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, group, gen, key, b); err != nil {
			s.log.Warn("cache write failed", "group", group, "key", key, "error", err)
		}
	}
	return v, nil
}

func (s *Service) invalidate(ctx context.Context, groups ...string) {
	if err := s.cache.Invalidate(ctx, groups...); err != nil {
		s.log.Warn("cache invalidation failed", "groups", groups, "error", err)
	}
}

// imageURL prefers a direct URL and falls back to the storage redirect route.
func imageURL(image, storageID string) string {
	if image != "" {
		return image
	}
	if storageID != "" {
		return StoragePathPrefix + storageID
	}
	return ""
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
