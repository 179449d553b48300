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

func bannerIn(title string, page models.PageType, pos models.BannerPosition) BannerInput {
	return BannerInput{Title: ptr(title), PageType: ptr(page), Position: ptr(pos), Image: ptr("https://cdn.lagougah.vn/" + title + ".jpg")}
}

func TestBannerMutationsRequireStaff(t *testing.T) {
	f := newFixture(t)
	userCtx := f.as(t, models.RoleUser)

	_, err := f.svc.CreateBanner(userCtx, bannerIn("hero", models.PageHomepage, models.PositionHero))
	assert.ErrorIs(t, err, access.ErrForbidden)
	assert.ErrorIs(t, f.svc.ReorderBanners(userCtx, nil), access.ErrForbidden)

	b, err := f.svc.CreateBanner(f.as(t, models.RoleEditor), bannerIn("hero", models.PageHomepage, models.PositionHero))
	require.NoError(t, err)
	assert.True(t, b.IsActive, "banners start active")
	assert.ErrorIs(t, f.svc.DeleteBanner(userCtx, b.ID), access.ErrForbidden)
}

func TestCreateBannerValidation(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	tests := []struct {
		name string
		in   BannerInput
	}{
		{"no title", BannerInput{PageType: ptr(models.PageNews), Position: ptr(models.PositionHero)}},
		{"no page", BannerInput{Title: ptr("x"), Position: ptr(models.PositionHero)}},
		{"bad page", BannerInput{Title: ptr("x"), PageType: ptr(models.PageType("about")), Position: ptr(models.PositionHero)}},
		{"bad position", BannerInput{Title: ptr("x"), PageType: ptr(models.PageNews), Position: ptr(models.BannerPosition("sidebar"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateBanner(ctx, tt.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestHeroWithoutImageIsAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	b, err := f.svc.CreateBanner(ctx, BannerInput{
		Title:    ptr("Chưa có ảnh"),
		PageType: ptr(models.PageHomepage),
		Position: ptr(models.PositionHero),
	})
	require.NoError(t, err)
	assert.False(t, b.HasImage())
}

func TestActiveBannersFilteredAndOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleAdmin)

	mk := func(title string, page models.PageType, pos models.BannerPosition, order int, active bool) {
		in := bannerIn(title, page, pos)
		in.Order = ptr(order)
		in.IsActive = ptr(active)
		_, err := f.svc.CreateBanner(ctx, in)
		require.NoError(t, err)
	}
	mk("second", models.PageHomepage, models.PositionHero, 2, true)
	mk("first", models.PageHomepage, models.PositionHero, 1, true)
	mk("hidden", models.PageHomepage, models.PositionHero, 0, false)
	mk("footer", models.PageHomepage, models.PositionFooter, 0, true)
	mk("news", models.PageNews, models.PositionHero, 0, true)

	got, err := f.svc.GetActiveBanners(context.Background(), models.PageHomepage, models.PositionHero)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.NotEmpty(t, got[0].ImageURL)

	_, err = f.svc.GetActiveBanners(context.Background(), "about", "")
	assert.ErrorIs(t, err, ErrInvalid)

	all, err := f.svc.ListBanners(ctx, models.BannerFilter{PageType: models.PageHomepage})
	require.NoError(t, err)
	assert.Len(t, all, 4, "admin listing includes inactive banners")
}

func TestReorderBanners(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	var ids []primitive.ObjectID
	for _, title := range []string{"a", "b", "c"} {
		b, err := f.svc.CreateBanner(ctx, bannerIn(title, models.PageStory, models.PositionSecondary))
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	require.NoError(t, f.svc.ReorderBanners(ctx, []primitive.ObjectID{ids[2], ids[0], ids[1]}))
	got, err := f.svc.GetActiveBanners(context.Background(), models.PageStory, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].Title, got[1].Title, got[2].Title})

	assert.ErrorIs(t, f.svc.ReorderBanners(ctx, []primitive.ObjectID{ids[0], ids[0]}), ErrInvalid)
	assert.ErrorIs(t, f.svc.ReorderBanners(ctx, []primitive.ObjectID{primitive.NewObjectID()}), ErrNotFound)
	assert.GreaterOrEqual(t, f.cache.invalidated[cache.GroupBanners], 4)
}

func TestBannerSliders(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	for i, c := range []struct{ title, group string }{
		{"s1", "summer"}, {"hero", ""}, {"s2", "summer"}, {"w1", "winter"},
	} {
		in := bannerIn(c.title, models.PageHomepage, models.PositionHero)
		in.Order = ptr(i)
		in.SliderGroup = ptr(c.group)
		_, err := f.svc.CreateBanner(ctx, in)
		require.NoError(t, err)
	}

	groups, err := f.svc.GetBannerSliders(context.Background(), models.PageHomepage)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "summer", groups[0].Name)
	assert.Len(t, groups[0].Banners, 2)
	assert.Equal(t, "hero", groups[1].Name)
	assert.Equal(t, "winter", groups[2].Name)
}

func TestUpdateBanner(t *testing.T) {
	f := newFixture(t)
	ctx := f.as(t, models.RoleEditor)

	b, err := f.svc.CreateBanner(ctx, bannerIn("a", models.PageTechnology, models.PositionHero))
	require.NoError(t, err)

	got, err := f.svc.UpdateBanner(ctx, b.ID, BannerInput{IsActive: ptr(false), Position: ptr(models.PositionFooter)})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, models.PositionFooter, got.Position)
	assert.Equal(t, "a", got.Title)

	_, err = f.svc.UpdateBanner(ctx, b.ID, BannerInput{Title: ptr(" ")})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = f.svc.UpdateBanner(ctx, primitive.NewObjectID(), BannerInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.svc.DeleteBanner(ctx, b.ID))
	_, err = f.svc.GetBanner(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
