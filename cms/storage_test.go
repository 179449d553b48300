package cms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/models"
)

func TestGenerateUploadURL(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GenerateUploadURL(f.as(t, models.RoleUser), "image/png")
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = f.svc.GenerateUploadURL(context.Background(), "image/png")
	assert.ErrorIs(t, err, access.ErrUnauthenticated)

	editor := f.as(t, models.RoleEditor)
	ticket, err := f.svc.GenerateUploadURL(editor, " image/png ")
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.StorageID)
	assert.Contains(t, ticket.UploadURL, "ct=image/png")

	f.files.err = errors.New("s3 unavailable")
	_, err = f.svc.GenerateUploadURL(editor, "image/png")
	assert.ErrorIs(t, err, ErrUpstream)

	unconfigured := New(Options{Store: f.store, Logger: noOpLogger()})
	_, err = unconfigured.GenerateUploadURL(editor, "image/png")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestStorageURL(t *testing.T) {
	f := newFixture(t)
	f.files.objects["known"] = "https://s3.test/uploads/known?sig=1"
	ctx := context.Background()

	url, ok := f.svc.StorageURL(ctx, "known")
	assert.True(t, ok)
	assert.Equal(t, "https://s3.test/uploads/known?sig=1", url)

	for _, id := range []string{"missing", ""} {
		url, ok := f.svc.StorageURL(ctx, id)
		assert.False(t, ok)
		assert.Empty(t, url)
	}

	unconfigured := New(Options{Store: f.store, Logger: noOpLogger()})
	_, ok = unconfigured.StorageURL(ctx, "known")
	assert.False(t, ok)
}
