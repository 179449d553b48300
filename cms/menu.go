package cms

import (
	"context"
	"strings"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItemInput struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Href        *string `json:"href" validate:"omitempty,max=2048"`
	Order       *int    `json:"order"`
	IsVisible   *bool   `json:"isVisible"`
	IsExternal  *bool   `json:"isExternal"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// GetAllMenuItems lists every item, hidden ones included, by order.
func (s *Service) GetAllMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if _, err := access.Authorize(ctx, access.OpListMenuItems); err != nil {
		return nil, err
	}
	return s.store.AllMenuItems(ctx)
}

func (s *Service) GetMenuItem(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	if _, err := access.Authorize(ctx, access.OpGetMenuItem); err != nil {
		return nil, err
	}
	return s.loadMenuItem(ctx, id)
}

func (s *Service) CreateMenuItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	p, err := access.Authorize(ctx, access.OpCreateMenuItem)
	if err != nil {
		return nil, err
	}
	title, href := trimmed(in.Title), trimmed(in.Href)
	if title == "" {
		return nil, invalid("title is required")
	}
	if href == "" {
		return nil, invalid("href is required")
	}
	now := s.now()
	m := &models.MenuItem{
		Title:       title,
		Href:        href,
		IsVisible:   true,
		Description: trimmed(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Order != nil {
		m.Order = *in.Order
	}
	if in.IsVisible != nil {
		m.IsVisible = *in.IsVisible
	}
	if in.IsExternal != nil {
		m.IsExternal = *in.IsExternal
	}
	id, err := s.store.InsertMenuItem(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	s.invalidate(ctx, cache.GroupMenu)
	s.log.Info("menu item created", "id", id.Hex(), "href", href, "by", p.Email)
	return m, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, id primitive.ObjectID, in MenuItemInput) (*models.MenuItem, error) {
	p, err := access.Authorize(ctx, access.OpUpdateMenuItem)
	if err != nil {
		return nil, err
	}
	m, err := s.loadMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if m.Title = trimmed(in.Title); m.Title == "" {
			return nil, invalid("title cannot be empty")
		}
	}
	if in.Href != nil {
		if m.Href = trimmed(in.Href); m.Href == "" {
			return nil, invalid("href cannot be empty")
		}
	}
	if in.Order != nil {
		m.Order = *in.Order
	}
	if in.IsVisible != nil {
		m.IsVisible = *in.IsVisible
	}
	if in.IsExternal != nil {
		m.IsExternal = *in.IsExternal
	}
	if in.Description != nil {
		m.Description = trimmed(in.Description)
	}
	m.UpdatedAt = s.now()
	if err := s.store.UpdateMenuItem(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.GroupMenu)
	s.log.Info("menu item updated", "id", id.Hex(), "visible", m.IsVisible, "by", p.Email)
	return m, nil
}

// ReorderMenuItems assigns order 0..n-1 following ids.
func (s *Service) ReorderMenuItems(ctx context.Context, ids []primitive.ObjectID) error {
	if _, err := access.Authorize(ctx, access.OpReorderMenuItem); err != nil {
		return err
	}
	if err := uniqueIDs(ids); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.loadMenuItem(ctx, id); err != nil {
			return err
		}
	}
	for i, id := range ids {
		if err := s.store.SetMenuItemOrder(ctx, id, i); err != nil {
			return err
		}
	}
	s.invalidate(ctx, cache.GroupMenu)
	return nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, id primitive.ObjectID) error {
	p, err := access.Authorize(ctx, access.OpDeleteMenuItem)
	if err != nil {
		return err
	}
	if _, err := s.loadMenuItem(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.GroupMenu)
	s.log.Info("menu item deleted", "id", id.Hex(), "by", p.Email)
	return nil
}

func (s *Service) loadMenuItem(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	m, err := s.store.MenuItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, notFound("menu item")
	}
	return m, nil
}

// SectionID extracts the homepage section id from an in-page href
// ("#news" or "/#news"). External and page links have none.
func SectionID(href string) (string, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(href), "/")
	if !strings.HasPrefix(h, "#") || len(h) == 1 {
		return "", false
	}
	return h[1:], true
}
