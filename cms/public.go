package cms

import (
	"context"
	"strconv"

	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/utils"
)

const (
	DefaultPublicPostLimit = 20
	MaxPublicPostLimit     = 100
)

// PublicPost is a published post with its content rendered for display.
type PublicPost struct {
	models.Post
	ContentHTML string `json:"contentHtml"`
}

// GetPublishedPosts lists published posts, newest first. limit is clamped to
// [1, MaxPublicPostLimit].
func (s *Service) GetPublishedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPublicPostLimit
	}
	limit = min(limit, MaxPublicPostLimit)
	return cached(ctx, s, cache.GroupPosts, "published:"+strconv.Itoa(limit), func() ([]models.Post, error) {
		posts, err := s.store.PublishedPosts(ctx, limit)
		if err != nil {
			return nil, err
		}
		for i := range posts {
			posts[i].ImageURL = imageURL(posts[i].Image, posts[i].ImageStorageID)
		}
		return posts, nil
	})
}

// GetPostBySlug returns a published post. Drafts and archived posts are not found.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*PublicPost, error) {
	if !utils.IsValidSlug(slug) {
		return nil, notFound("post")
	}
	return cached(ctx, s, cache.GroupPosts, "slug:"+slug, func() (*PublicPost, error) {
		post, err := s.store.PublishedPostBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, notFound("post")
		}
		html, err := utils.RenderMarkdown(post.Content)
		if err != nil {
			return nil, err
		}
		post.ImageURL = imageURL(post.Image, post.ImageStorageID)
		return &PublicPost{Post: *post, ContentHTML: html}, nil
	})
}

// GetStaticPaths lists the slugs a static export has to pre-render.
func (s *Service) GetStaticPaths(ctx context.Context) ([]models.PostPath, error) {
	return cached(ctx, s, cache.GroupPosts, "paths", func() ([]models.PostPath, error) {
		return s.store.PublishedPaths(ctx)
	})
}

func (s *Service) GetVisibleMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return cached(ctx, s, cache.GroupMenu, "visible", func() ([]models.MenuItem, error) {
		return s.store.VisibleMenuItems(ctx)
	})
}

// GetHomeSections maps each homepage section linked from the menu to whether
// it should render. A section is shown while any menu item pointing at it is visible.
func (s *Service) GetHomeSections(ctx context.Context) (map[string]bool, error) {
	return cached(ctx, s, cache.GroupMenu, "sections", func() (map[string]bool, error) {
		items, err := s.store.AllMenuItems(ctx)
		if err != nil {
			return nil, err
		}
		sections := make(map[string]bool)
		for _, m := range items {
			id, ok := SectionID(m.Href)
			if !ok {
				continue
			}
			sections[id] = sections[id] || m.IsVisible
		}
		return sections, nil
	})
}

// GetActiveBanners returns active banners for a page and position, by order.
// Empty pageType or position matches all.
func (s *Service) GetActiveBanners(ctx context.Context, pageType models.PageType, position models.BannerPosition) ([]models.Banner, error) {
	f := models.BannerFilter{PageType: pageType, Position: position}
	if err := validateBannerFilter(f); err != nil {
		return nil, err
	}
	key := "active:" + string(pageType) + ":" + string(position)
	return cached(ctx, s, cache.GroupBanners, key, func() ([]models.Banner, error) {
		banners, err := s.store.ActiveBanners(ctx, f)
		if err != nil {
			return nil, err
		}
		withBannerImageURLs(banners)
		return banners, nil
	})
}

// GetBannerSliders groups the active banners of a page into carousels.
// Banners without a slider group fall into a group named after their position.
// Groups keep the order of their first banner.
func (s *Service) GetBannerSliders(ctx context.Context, pageType models.PageType) ([]models.SliderGroup, error) {
	banners, err := s.GetActiveBanners(ctx, pageType, "")
	if err != nil {
		return nil, err
	}
	return groupSliders(banners), nil
}

func groupSliders(banners []models.Banner) []models.SliderGroup {
	groups := []models.SliderGroup{}
	index := make(map[string]int)
	for _, b := range banners {
		name := b.SliderGroup
		if name == "" {
			name = string(b.Position)
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, models.SliderGroup{Name: name})
		}
		groups[i].Banners = append(groups[i].Banners, b)
	}
	return groups
}
