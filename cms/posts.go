package cms

import (
	"context"
	"errors"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/store"
	"github.com/taibui324/la-gougah/backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostInput is used for both create and partial update; nil fields are left alone.
type PostInput struct {
	Title          *string            `json:"title" validate:"omitempty,max=200"`
	Slug           *string            `json:"slug" validate:"omitempty,max=192"`
	Description    *string            `json:"description" validate:"omitempty,max=1000"`
	Content        *string            `json:"content"`
	Image          *string            `json:"image" validate:"omitempty,max=2048"`
	ImageStorageID *string            `json:"imageStorageId" validate:"omitempty,max=128"`
	Status         *models.PostStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (s *Service) ListPosts(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	if _, err := access.Authorize(ctx, access.OpListPosts); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("unknown post status %q", f.Status)
	}
	posts, err := s.store.ListPosts(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].ImageURL = imageURL(posts[i].Image, posts[i].ImageStorageID)
	}
	return posts, nil
}

func (s *Service) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	if _, err := access.Authorize(ctx, access.OpGetPost); err != nil {
		return nil, err
	}
	return s.loadPost(ctx, id)
}

// GetPostBySlugAdmin finds a post in any status, for the editor preview.
func (s *Service) GetPostBySlugAdmin(ctx context.Context, slug string) (*models.Post, error) {
	if _, err := access.Authorize(ctx, access.OpGetPost); err != nil {
		return nil, err
	}
	post, err := s.store.PostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, notFound("post")
	}
	post.ImageURL = imageURL(post.Image, post.ImageStorageID)
	return post, nil
}

func (s *Service) CreatePost(ctx context.Context, in PostInput) (*models.Post, error) {
	p, err := access.Authorize(ctx, access.OpCreatePost)
	if err != nil {
		return nil, err
	}
	title := trimmed(in.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	slug := trimmed(in.Slug)
	if slug == "" {
		slug = utils.Slugify(title)
	}
	if !utils.IsValidSlug(slug) {
		return nil, invalid("slug %q must be lowercase letters, digits and hyphens", slug)
	}
	status := models.PostDraft
	if in.Status != nil {
		status = *in.Status
	}
	if !status.Valid() {
		return nil, invalid("unknown post status %q", status)
	}
	if err := s.ensureSlugFree(ctx, slug, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		Title:          title,
		Slug:           slug,
		Description:    trimmed(in.Description),
		Image:          trimmed(in.Image),
		ImageStorageID: trimmed(in.ImageStorageID),
		Status:         status,
		AuthorID:       p.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if status == models.PostPublished {
		post.PublishedAt = &now
	}
	id, err := s.store.InsertPost(ctx, post)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("slug %q is already in use", slug)
	}
	if err != nil {
		return nil, err
	}
	post.ID = id
	post.ImageURL = imageURL(post.Image, post.ImageStorageID)
	s.invalidate(ctx, cache.GroupPosts)
	s.log.Info("post created", "id", id.Hex(), "slug", slug, "status", status, "by", p.Email)
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id primitive.ObjectID, in PostInput) (*models.Post, error) {
	p, err := access.Authorize(ctx, access.OpUpdatePost)
	if err != nil {
		return nil, err
	}
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := trimmed(in.Title)
		if title == "" {
			return nil, invalid("title cannot be empty")
		}
		post.Title = title
	}
	if in.Slug != nil {
		slug := trimmed(in.Slug)
		if !utils.IsValidSlug(slug) {
			return nil, invalid("slug %q must be lowercase letters, digits and hyphens", slug)
		}
		if slug != post.Slug {
			if err := s.ensureSlugFree(ctx, slug, post.ID); err != nil {
				return nil, err
			}
		}
		post.Slug = slug
	}
	if in.Description != nil {
		post.Description = trimmed(in.Description)
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Image != nil {
		post.Image = trimmed(in.Image)
	}
	if in.ImageStorageID != nil {
		post.ImageStorageID = trimmed(in.ImageStorageID)
	}
	now := s.now()
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalid("unknown post status %q", *in.Status)
		}
		post.Status = *in.Status
		// publishedAt is stamped once and survives unpublishing
		if post.Status == models.PostPublished && post.PublishedAt == nil {
			post.PublishedAt = &now
		}
	}
	post.UpdatedAt = now

	err = s.store.UpdatePost(ctx, post)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("slug %q is already in use", post.Slug)
	}
	if err != nil {
		return nil, err
	}
	post.ImageURL = imageURL(post.Image, post.ImageStorageID)
	s.invalidate(ctx, cache.GroupPosts)
	s.log.Info("post updated", "id", id.Hex(), "status", post.Status, "by", p.Email)
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	p, err := access.Authorize(ctx, access.OpDeletePost)
	if err != nil {
		return err
	}
	if _, err := s.loadPost(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.GroupPosts)
	s.log.Info("post deleted", "id", id.Hex(), "by", p.Email)
	return nil
}

func (s *Service) loadPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, notFound("post")
	}
	post.ImageURL = imageURL(post.Image, post.ImageStorageID)
	return post, nil
}

// ensureSlugFree gives a readable conflict before the write. The unique index
// still decides when two writers race.
func (s *Service) ensureSlugFree(ctx context.Context, slug string, except primitive.ObjectID) error {
	existing, err := s.store.PostBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != except {
		return conflict("slug %q is already in use", slug)
	}
	return nil
}
