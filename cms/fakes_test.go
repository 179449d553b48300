package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/store/memstore"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tickingClock returns a later instant on every call so orderings are deterministic.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type fakeFiles struct {
	objects map[string]string
	err     error
}

func (f *fakeFiles) PresignUpload(_ context.Context, contentType string) (*models.UploadTicket, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UploadTicket{
		UploadURL: "https://s3.test/uploads/0f8fad5b-d9cb-469f-a165-70867728950e?ct=" + contentType,
		StorageID: "0f8fad5b-d9cb-469f-a165-70867728950e",
		ExpiresAt: time.Date(2025, 6, 1, 8, 15, 0, 0, time.UTC),
	}, nil
}

func (f *fakeFiles) ResolveURL(_ context.Context, id string) (string, error) {
	if u, ok := f.objects[id]; ok {
		return u, nil
	}
	return "", errors.New("no such object")
}

type fakeMailer struct {
	sent []models.ContactInquiry
	err  error
}

func (m *fakeMailer) SendInquiry(_ context.Context, in *models.ContactInquiry) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, *in)
	return nil
}

// mapCache is an in-process cache.Cache that counts invalidations.
type mapCache struct {
	mu          sync.Mutex
	gens        map[string]int64
	entries     map[string][]byte
	invalidated map[string]int
}

func newMapCache() *mapCache {
	return &mapCache{gens: map[string]int64{}, entries: map[string][]byte{}, invalidated: map[string]int{}}
}

func entryKey(group string, gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", group, gen, key)
}

func (c *mapCache) Generation(_ context.Context, group string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[group], nil
}

func (c *mapCache) Get(_ context.Context, group string, gen int64, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[entryKey(group, gen, key)]; ok {
		return v, nil
	}
	return nil, cache.ErrMiss
}

func (c *mapCache) Set(_ context.Context, group string, gen int64, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entryKey(group, gen, key)] = value
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, groups ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range groups {
		c.gens[g]++
		c.invalidated[g]++
	}
	return nil
}

func (c *mapCache) Close() error { return nil }

type fixture struct {
	svc    *Service
	store  *memstore.Store
	files  *fakeFiles
	mailer *fakeMailer
	cache  *mapCache
	seq    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  memstore.New(),
		files:  &fakeFiles{objects: map[string]string{}},
		mailer: &fakeMailer{},
		cache:  newMapCache(),
	}
	f.svc = New(Options{
		Store:       f.store,
		Files:       f.files,
		Mailer:      f.mailer,
		Cache:       f.cache,
		Logger:      noOpLogger(),
		AllowSignup: true,
		Now:         tickingClock(),
	})
	return f
}

// as creates a user with the given role and returns a context signed in as them.
func (f *fixture) as(t *testing.T, role models.Role) context.Context {
	t.Helper()
	ctx := context.Background()
	f.seq++
	u := &models.User{
		Email:  fmt.Sprintf("%s%d@lagougah.vn", role, f.seq),
		Role:   role,
		Status: models.UserActive,
	}
	id, err := f.store.CreateUser(ctx, u)
	require.NoError(t, err)
	return access.WithPrincipal(ctx, access.Principal{UserID: id, Email: u.Email, Role: role})
}

func ptr[T any](v T) *T { return &v }
