package cms

import (
	"context"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BannerInput struct {
	Title          *string                `json:"title" validate:"omitempty,max=200"`
	Description    *string                `json:"description" validate:"omitempty,max=1000"`
	Image          *string                `json:"image" validate:"omitempty,max=2048"`
	ImageStorageID *string                `json:"imageStorageId" validate:"omitempty,max=128"`
	Link           *string                `json:"link" validate:"omitempty,max=2048"`
	PageType       *models.PageType       `json:"pageType" validate:"omitempty,oneof=homepage technology story news general"`
	Position       *models.BannerPosition `json:"position" validate:"omitempty,oneof=hero secondary footer"`
	IsActive       *bool                  `json:"isActive"`
	Order          *int                   `json:"order"`
	SliderGroup    *string                `json:"sliderGroup" validate:"omitempty,max=64"`
}

func (s *Service) ListBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, error) {
	if _, err := access.Authorize(ctx, access.OpListBanners); err != nil {
		return nil, err
	}
	if err := validateBannerFilter(f); err != nil {
		return nil, err
	}
	banners, err := s.store.ListBanners(ctx, f)
	if err != nil {
		return nil, err
	}
	withBannerImageURLs(banners)
	return banners, nil
}

func (s *Service) GetBanner(ctx context.Context, id primitive.ObjectID) (*models.Banner, error) {
	if _, err := access.Authorize(ctx, access.OpGetBanner); err != nil {
		return nil, err
	}
	return s.loadBanner(ctx, id)
}

func (s *Service) CreateBanner(ctx context.Context, in BannerInput) (*models.Banner, error) {
	p, err := access.Authorize(ctx, access.OpCreateBanner)
	if err != nil {
		return nil, err
	}
	title := trimmed(in.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	if in.PageType == nil || !in.PageType.Valid() {
		return nil, invalid("pageType must be one of homepage, technology, story, news, general")
	}
	if in.Position == nil || !in.Position.Valid() {
		return nil, invalid("position must be one of hero, secondary, footer")
	}
	now := s.now()
	b := &models.Banner{
		Title:          title,
		Description:    trimmed(in.Description),
		Image:          trimmed(in.Image),
		ImageStorageID: trimmed(in.ImageStorageID),
		Link:           trimmed(in.Link),
		PageType:       *in.PageType,
		Position:       *in.Position,
		IsActive:       true,
		SliderGroup:    trimmed(in.SliderGroup),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	if in.Order != nil {
		b.Order = *in.Order
	}
	s.warnHeroWithoutImage(b)

	id, err := s.store.InsertBanner(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	b.ImageURL = imageURL(b.Image, b.ImageStorageID)
	s.invalidate(ctx, cache.GroupBanners)
	s.log.Info("banner created", "id", id.Hex(), "page", b.PageType, "position", b.Position, "by", p.Email)
	return b, nil
}

func (s *Service) UpdateBanner(ctx context.Context, id primitive.ObjectID, in BannerInput) (*models.Banner, error) {
	p, err := access.Authorize(ctx, access.OpUpdateBanner)
	if err != nil {
		return nil, err
	}
	b, err := s.loadBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := trimmed(in.Title)
		if title == "" {
			return nil, invalid("title cannot be empty")
		}
		b.Title = title
	}
	if in.Description != nil {
		b.Description = trimmed(in.Description)
	}
	if in.Image != nil {
		b.Image = trimmed(in.Image)
	}
	if in.ImageStorageID != nil {
		b.ImageStorageID = trimmed(in.ImageStorageID)
	}
	if in.Link != nil {
		b.Link = trimmed(in.Link)
	}
	if in.PageType != nil {
		if !in.PageType.Valid() {
			return nil, invalid("unknown pageType %q", *in.PageType)
		}
		b.PageType = *in.PageType
	}
	if in.Position != nil {
		if !in.Position.Valid() {
			return nil, invalid("unknown position %q", *in.Position)
		}
		b.Position = *in.Position
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	if in.Order != nil {
		b.Order = *in.Order
	}
	if in.SliderGroup != nil {
		b.SliderGroup = trimmed(in.SliderGroup)
	}
	b.UpdatedAt = s.now()
	s.warnHeroWithoutImage(b)

	if err := s.store.UpdateBanner(ctx, b); err != nil {
		return nil, err
	}
	b.ImageURL = imageURL(b.Image, b.ImageStorageID)
	s.invalidate(ctx, cache.GroupBanners)
	s.log.Info("banner updated", "id", id.Hex(), "by", p.Email)
	return b, nil
}

// ReorderBanners assigns order 0..n-1 following ids.
func (s *Service) ReorderBanners(ctx context.Context, ids []primitive.ObjectID) error {
	if _, err := access.Authorize(ctx, access.OpReorderBanner); err != nil {
		return err
	}
	if err := uniqueIDs(ids); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.loadBanner(ctx, id); err != nil {
			return err
		}
	}
	for i, id := range ids {
		if err := s.store.SetBannerOrder(ctx, id, i); err != nil {
			return err
		}
	}
	s.invalidate(ctx, cache.GroupBanners)
	return nil
}

func (s *Service) DeleteBanner(ctx context.Context, id primitive.ObjectID) error {
	p, err := access.Authorize(ctx, access.OpDeleteBanner)
	if err != nil {
		return err
	}
	if _, err := s.loadBanner(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteBanner(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.GroupBanners)
	s.log.Info("banner deleted", "id", id.Hex(), "by", p.Email)
	return nil
}

func (s *Service) loadBanner(ctx context.Context, id primitive.ObjectID) (*models.Banner, error) {
	b, err := s.store.BannerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, notFound("banner")
	}
	b.ImageURL = imageURL(b.Image, b.ImageStorageID)
	return b, nil
}

// warnHeroWithoutImage is the soft check for hero banners; the write still goes through.
func (s *Service) warnHeroWithoutImage(b *models.Banner) {
	if b.Position == models.PositionHero && !b.HasImage() {
		s.log.Warn("hero banner has no image", "title", b.Title, "page", b.PageType)
	}
}

func validateBannerFilter(f models.BannerFilter) error {
	if f.PageType != "" && !f.PageType.Valid() {
		return invalid("unknown pageType %q", f.PageType)
	}
	if f.Position != "" && !f.Position.Valid() {
		return invalid("unknown position %q", f.Position)
	}
	return nil
}

func withBannerImageURLs(banners []models.Banner) {
	for i := range banners {
		banners[i].ImageURL = imageURL(banners[i].Image, banners[i].ImageStorageID)
	}
}

func uniqueIDs(ids []primitive.ObjectID) error {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return invalid("duplicate id %s in order list", id.Hex())
		}
		seen[id] = struct{}{}
	}
	return nil
}
