package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostMutationsRequireStaff(t *testing.T) {
	f := newFixture(t)
	userCtx := f.as(t, models.RoleUser)
	anon := context.Background()

	_, err := f.svc.CreatePost(userCtx, PostInput{Title: ptr("Nước khoáng")})
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = f.svc.CreatePost(anon, PostInput{Title: ptr("Nước khoáng")})
	assert.ErrorIs(t, err, access.ErrUnauthenticated)

	post, err := f.svc.CreatePost(f.as(t, models.RoleAdmin), PostInput{Title: ptr("Nước khoáng")})
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(userCtx, post.ID, PostInput{Title: ptr("x")})
	assert.ErrorIs(t, err, access.ErrForbidden)
	assert.ErrorIs(t, f.svc.DeletePost(userCtx, post.ID), access.ErrForbidden)
	_, err = f.svc.ListPosts(userCtx, models.PostFilter{})
	assert.ErrorIs(t, err, access.ErrForbidden)
}

func TestCreatePostDerivesSlug(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	post, err := f.svc.CreatePost(ctx, PostInput{Title: ptr("  Nguồn nước Đà Lạt  ")})
	require.NoError(t, err)
	assert.Equal(t, "nguon-nuoc-da-lat", post.Slug)
	assert.Equal(t, "Nguồn nước Đà Lạt", post.Title)
	assert.Equal(t, models.PostDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.False(t, post.AuthorID.IsZero())
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	tests := []struct {
		name string
		in   PostInput
	}{
		{"missing title", PostInput{Slug: ptr("a")}},
		{"blank title", PostInput{Title: ptr("   ")}},
		{"bad slug", PostInput{Title: ptr("A"), Slug: ptr("Not A Slug")}},
		{"bad status", PostInput{Title: ptr("A"), Status: ptr(models.PostStatus("live"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreatePost(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSlugUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	a, err := f.svc.CreatePost(ctx, PostInput{Title: ptr("A"), Slug: ptr("same")})
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, PostInput{Title: ptr("B"), Slug: ptr("same")})
	assert.ErrorIs(t, err, ErrConflict)

	b, err := f.svc.CreatePost(ctx, PostInput{Title: ptr("B"), Slug: ptr("other")})
	require.NoError(t, err)

	// keeping its own slug is not a conflict
	_, err = f.svc.UpdatePost(ctx, a.ID, PostInput{Slug: ptr("same"), Title: ptr("A2")})
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(ctx, b.ID, PostInput{Slug: ptr("same")})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPublishLifecycle(t *testing.T) {
	f := newFixture(t)
	editor := f.as(t, models.RoleEditor)
	anon := context.Background()

	post, err := f.svc.CreatePost(editor, PostInput{
		Title:   ptr("Công nghệ lọc"),
		Content: ptr("# Lọc\n\nNước **sạch**."),
	})
	require.NoError(t, err)

	_, err = f.svc.GetPostBySlug(anon, post.Slug)
	assert.ErrorIs(t, err, ErrNotFound, "drafts are not public")

	published, err := f.svc.UpdatePost(editor, post.ID, PostInput{Status: ptr(models.PostPublished)})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublished := *published.PublishedAt

	pub, err := f.svc.GetPostBySlug(anon, post.Slug)
	require.NoError(t, err)
	assert.Contains(t, pub.ContentHTML, "<h1")
	assert.Contains(t, pub.ContentHTML, "<strong>sạch</strong>")

	paths, err := f.svc.GetStaticPaths(anon)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, post.Slug, paths[0].Slug)

	back, err := f.svc.UpdatePost(editor, post.ID, PostInput{Status: ptr(models.PostDraft)})
	require.NoError(t, err)
	require.NotNil(t, back.PublishedAt)
	assert.Equal(t, firstPublished, *back.PublishedAt)

	again, err := f.svc.UpdatePost(editor, post.ID, PostInput{Status: ptr(models.PostPublished)})
	require.NoError(t, err)
	assert.Equal(t, firstPublished, *again.PublishedAt, "publishedAt is stamped once")

	_, err = f.svc.UpdatePost(editor, post.ID, PostInput{Status: ptr(models.PostArchived)})
	require.NoError(t, err)
	_, err = f.svc.GetPostBySlug(anon, post.Slug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishedPostsOnlyPublished(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleAdmin)

	for _, in := range []PostInput{
		{Title: ptr("Draft")},
		{Title: ptr("First"), Status: ptr(models.PostPublished)},
		{Title: ptr("Archived"), Status: ptr(models.PostArchived)},
		{Title: ptr("Second"), Status: ptr(models.PostPublished)},
	} {
		_, err := f.svc.CreatePost(ctx, in)
		require.NoError(t, err)
	}

	posts, err := f.svc.GetPublishedPosts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)
	assert.Equal(t, "First", posts[1].Title)
	for _, p := range posts {
		assert.Equal(t, models.PostPublished, p.Status)
	}

	one, err := f.svc.GetPublishedPosts(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestPostNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)
	missing := primitive.NewObjectID()

	_, err := f.svc.GetPost(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.UpdatePost(ctx, missing, PostInput{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.DeletePost(ctx, missing), ErrNotFound)
}

func TestPostImageURLFallsBackToStorageRoute(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	post, err := f.svc.CreatePost(ctx, PostInput{Title: ptr("A"), ImageStorageID: ptr("abc")})
	require.NoError(t, err)
	assert.Equal(t, "/api/storage/abc", post.ImageURL)

	post, err = f.svc.UpdatePost(ctx, post.ID, PostInput{Image: ptr("https://cdn.lagougah.vn/a.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.lagougah.vn/a.jpg", post.ImageURL)
}

func TestPostWritesInvalidateCachedReads(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)
	anon := context.Background()

	posts, err := f.svc.GetPublishedPosts(anon, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
	gen, err := f.cache.Generation(anon, cache.GroupPosts)
	require.NoError(t, err)
	_, err = f.cache.Get(anon, cache.GroupPosts, gen, "published:10")
	require.NoError(t, err, "read fills the cache")

	_, err = f.svc.CreatePost(ctx, PostInput{Title: ptr("Fresh"), Status: ptr(models.PostPublished)})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.invalidated[cache.GroupPosts])

	posts, err = f.svc.GetPublishedPosts(anon, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestEditorDraftThenPublish(t *testing.T) {
	f := newFixture(t)
	editor := f.as(t, models.RoleEditor)
	anon := context.Background()

	post, err := f.svc.CreatePost(editor, PostInput{Title: ptr("X"), Slug: ptr("x"), Status: ptr(models.PostDraft)})
	require.NoError(t, err)

	posts, err := f.svc.GetPublishedPosts(anon, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)

	post, err = f.svc.UpdatePost(editor, post.ID, PostInput{Status: ptr(models.PostPublished)})
	require.NoError(t, err)
	assert.NotNil(t, post.PublishedAt)

	posts, err = f.svc.GetPublishedPosts(anon, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "x", posts[0].Slug)
}
