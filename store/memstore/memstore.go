// Package memstore is an in-memory document store with the same contract as
// the MongoDB store, including unique slug and email constraints. It backs
// tests and the STORE_DRIVER=memory development mode.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]models.User
	posts     map[primitive.ObjectID]models.Post
	banners   map[primitive.ObjectID]models.Banner
	menu      map[primitive.ObjectID]models.MenuItem
	contact   *models.ContactSettings
	inquiries []models.ContactInquiry
}

func New() *Store {
	return &Store{
		users:   make(map[primitive.ObjectID]models.User),
		posts:   make(map[primitive.ObjectID]models.Post),
		banners: make(map[primitive.ObjectID]models.Banner),
		menu:    make(map[primitive.ObjectID]models.MenuItem),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

// Users

func (s *Store) AdminsCount(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, u := range s.users {
		if u.Role == models.RoleAdmin && u.IsActive() {
			n++
		}
	}
	return n, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(u.Email, primitive.NilObjectID) {
		return primitive.NilObjectID, store.ErrDuplicate
	}
	doc := *u
	doc.ID = primitive.NewObjectID()
	s.users[doc.ID] = doc
	return doc.ID, nil
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.users)
	slices.SortFunc(out, func(a, b models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.Hex(), b.ID.Hex())
	})
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok {
		return nil
	}
	if s.emailTaken(u.Email, u.ID) {
		return store.ErrDuplicate
	}
	cur.Email, cur.Name, cur.Password = u.Email, u.Name, u.Password
	cur.Role, cur.Status, cur.UpdatedAt = u.Role, u.Status, u.UpdatedAt
	s.users[u.ID] = cur
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *Store) emailTaken(email string, except primitive.ObjectID) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

// Posts

func (s *Store) InsertPost(_ context.Context, p *models.Post) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(p.Slug, primitive.NilObjectID) {
		return primitive.NilObjectID, store.ErrDuplicate
	}
	doc := *p
	doc.ID = primitive.NewObjectID()
	s.posts[doc.ID] = doc
	return doc.ID, nil
}

func (s *Store) PostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.posts[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) PostBySlug(_ context.Context, slug string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) ListPosts(_ context.Context, f models.PostFilter) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if f.Status == "" || p.Status == f.Status {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID.Hex(), a.ID.Hex())
	})
	return out, nil
}

func (s *Store) PublishedPosts(_ context.Context, limit int) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if p.Status == models.PostPublished {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Post) int {
		if c := publishedAt(b).Compare(publishedAt(a)); c != 0 {
			return c
		}
		return cmp.Compare(b.ID.Hex(), a.ID.Hex())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) PublishedPostBySlug(_ context.Context, slug string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Slug == slug && p.Status == models.PostPublished {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) PublishedPaths(ctx context.Context) ([]models.PostPath, error) {
	posts, err := s.PublishedPosts(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := make([]models.PostPath, 0, len(posts))
	for _, p := range posts {
		out = append(out, models.PostPath{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	return out, nil
}

func (s *Store) UpdatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.posts[p.ID]
	if !ok {
		return nil
	}
	if s.slugTaken(p.Slug, p.ID) {
		return store.ErrDuplicate
	}
	doc := *p
	doc.CreatedAt, doc.AuthorID = cur.CreatedAt, cur.AuthorID
	s.posts[p.ID] = doc
	return nil
}

func (s *Store) DeletePost(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *Store) slugTaken(slug string, except primitive.ObjectID) bool {
	for id, p := range s.posts {
		if id != except && p.Slug == slug {
			return true
		}
	}
	return false
}

func publishedAt(p models.Post) time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return time.Time{}
}

// Banners

func (s *Store) InsertBanner(_ context.Context, b *models.Banner) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := *b
	doc.ID = primitive.NewObjectID()
	s.banners[doc.ID] = doc
	return doc.ID, nil
}

func (s *Store) BannerByID(_ context.Context, id primitive.ObjectID) (*models.Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.banners[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *Store) ListBanners(_ context.Context, f models.BannerFilter) ([]models.Banner, error) {
	return s.filterBanners(f, false), nil
}

func (s *Store) ActiveBanners(_ context.Context, f models.BannerFilter) ([]models.Banner, error) {
	return s.filterBanners(f, true), nil
}

func (s *Store) filterBanners(f models.BannerFilter, activeOnly bool) []models.Banner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Banner{}
	for _, b := range s.banners {
		if f.PageType != "" && b.PageType != f.PageType {
			continue
		}
		if f.Position != "" && b.Position != f.Position {
			continue
		}
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, b)
	}
	slices.SortStableFunc(out, func(a, b models.Banner) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.Hex(), b.ID.Hex())
	})
	return out
}

func (s *Store) UpdateBanner(_ context.Context, b *models.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.banners[b.ID]
	if !ok {
		return nil
	}
	doc := *b
	doc.CreatedAt = cur.CreatedAt
	doc.ImageURL = ""
	s.banners[b.ID] = doc
	return nil
}

func (s *Store) SetBannerOrder(_ context.Context, id primitive.ObjectID, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.banners[id]; ok {
		b.Order = order
		s.banners[id] = b
	}
	return nil
}

func (s *Store) DeleteBanner(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.banners, id)
	return nil
}

// Menu items

func (s *Store) InsertMenuItem(_ context.Context, m *models.MenuItem) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := *m
	doc.ID = primitive.NewObjectID()
	s.menu[doc.ID] = doc
	return doc.ID, nil
}

func (s *Store) MenuItemByID(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.menu[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) AllMenuItems(_ context.Context) ([]models.MenuItem, error) {
	return s.menuItems(false), nil
}

func (s *Store) VisibleMenuItems(_ context.Context) ([]models.MenuItem, error) {
	return s.menuItems(true), nil
}

func (s *Store) menuItems(visibleOnly bool) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.MenuItem{}
	for _, m := range s.menu {
		if !visibleOnly || m.IsVisible {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b models.MenuItem) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.Hex(), b.ID.Hex())
	})
	return out
}

func (s *Store) UpdateMenuItem(_ context.Context, m *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.menu[m.ID]
	if !ok {
		return nil
	}
	doc := *m
	doc.CreatedAt = cur.CreatedAt
	s.menu[m.ID] = doc
	return nil
}

func (s *Store) SetMenuItemOrder(_ context.Context, id primitive.ObjectID, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.menu[id]; ok {
		m.Order = order
		s.menu[id] = m
	}
	return nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.menu, id)
	return nil
}

// Contact

func (s *Store) ContactSettings(_ context.Context) (*models.ContactSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.contact == nil {
		return nil, nil
	}
	cs := *s.contact
	return &cs, nil
}

func (s *Store) SaveContactSettings(_ context.Context, cs *models.ContactSettings) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := *cs
	if doc.ID.IsZero() {
		if s.contact != nil {
			doc.ID = s.contact.ID
		} else {
			doc.ID = primitive.NewObjectID()
		}
	}
	s.contact = &doc
	return doc.ID, nil
}

func (s *Store) InsertContactInquiry(_ context.Context, in *models.ContactInquiry) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := *in
	doc.ID = primitive.NewObjectID()
	s.inquiries = append(s.inquiries, doc)
	return doc.ID, nil
}

func (s *Store) ListContactInquiries(_ context.Context, limit int) ([]models.ContactInquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.inquiries)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func values[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
