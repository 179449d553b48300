package cms

import (
	"context"
	"errors"
	"strings"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var errLastAdmin = &Error{Kind: ErrInvalid, Message: "cannot remove the last admin"}

// UserInput is the admin create/update payload. On update nil fields are kept.
type UserInput struct {
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin editor user"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	if _, err := access.Authorize(ctx, access.OpListUsers); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

func (s *Service) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if _, err := access.Authorize(ctx, access.OpGetUser); err != nil {
		return nil, err
	}
	return s.loadUser(ctx, id)
}

func (s *Service) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	p, err := access.Authorize(ctx, access.OpCreateUser)
	if err != nil {
		return nil, err
	}
	role := models.RoleUser
	if in.Role != nil {
		r, ok := models.ParseRole(*in.Role)
		if !ok {
			return nil, invalid("invalid role; use admin, editor, or user")
		}
		role = r
	}
	status := models.UserActive
	if in.Status != nil {
		status = models.UserStatus(strings.TrimSpace(*in.Status))
		if !status.Valid() {
			return nil, invalid("invalid status; use active or inactive")
		}
	}
	u, err := s.newUser(ctx, normalizeEmail(in.Email), trimmed(in.Name), passwordOf(in.Password), role, status)
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", "id", u.ID.Hex(), "role", u.Role, "by", p.Email)
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id primitive.ObjectID, in UserInput) (*models.User, error) {
	p, err := access.Authorize(ctx, access.OpUpdateUser)
	if err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *u
	if in.Email != nil {
		email := normalizeEmail(in.Email)
		if email == "" {
			return nil, invalid("email cannot be empty")
		}
		if email != u.Email {
			if err := s.ensureEmailFree(ctx, email, u.ID); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}
	if in.Name != nil {
		u.Name = trimmed(in.Name)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	demoting := false
	if in.Role != nil {
		r, ok := models.ParseRole(*in.Role)
		if !ok {
			return nil, invalid("invalid role; use admin, editor, or user")
		}
		demoting = u.Role == models.RoleAdmin && r != models.RoleAdmin
		u.Role = r
	}
	if in.Status != nil {
		st := models.UserStatus(strings.TrimSpace(*in.Status))
		if !st.Valid() {
			return nil, invalid("invalid status; use active or inactive")
		}
		if u.Role == models.RoleAdmin && u.IsActive() && st == models.UserInactive {
			demoting = true
		}
		u.Status = st
	}
	if demoting {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}
	u.UpdatedAt = s.now()

	err = s.store.UpdateUser(ctx, u)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("email already in use")
	}
	if err != nil {
		return nil, err
	}
	if demoting {
		if err := s.keepAnAdmin(ctx, &before); err != nil {
			return nil, err
		}
	}
	s.log.Info("user updated", "id", id.Hex(), "role", u.Role, "status", u.Status, "by", p.Email)
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	p, err := access.Authorize(ctx, access.OpDeleteUser)
	if err != nil {
		return err
	}
	if id == p.UserID {
		return invalid("cannot delete your own account")
	}
	u, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleAdmin && u.IsActive() {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
		// deactivate first so a concurrent demotion is seen by the recount
		before := *u
		u.Status = models.UserInactive
		if err := s.store.UpdateUser(ctx, u); err != nil {
			return err
		}
		if err := s.keepAnAdmin(ctx, &before); err != nil {
			return err
		}
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", "id", id.Hex(), "by", p.Email)
	return nil
}

// newUser validates and inserts an account. Authorization is the caller's job.
func (s *Service) newUser(ctx context.Context, email, name, password string, role models.Role, status models.UserStatus) (*models.User, error) {
	if email == "" || password == "" {
		return nil, invalid("email and password required")
	}
	if err := s.ensureEmailFree(ctx, email, primitive.NilObjectID); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &models.User{
		Email:     email,
		Name:      name,
		Password:  hash,
		Role:      role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.CreateUser(ctx, u)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("email already in use")
	}
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

func (s *Service) loadUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user")
	}
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, except primitive.ObjectID) error {
	existing, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != except {
		return conflict("email already in use")
	}
	return nil
}

// ensureNotLastAdmin refuses to remove the only active admin.
func (s *Service) ensureNotLastAdmin(ctx context.Context) error {
	n, err := s.store.AdminsCount(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return errLastAdmin
	}
	return nil
}

// keepAnAdmin recounts after a write that took an active admin away and
// restores the previous document when none is left. Two admins demoting each
// other at once both pass ensureNotLastAdmin; this catches the second.
func (s *Service) keepAnAdmin(ctx context.Context, restore *models.User) error {
	n, err := s.store.AdminsCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if err := s.store.UpdateUser(ctx, restore); err != nil {
		return err
	}
	s.log.Warn("admin change rolled back", "id", restore.ID.Hex())
	return errLastAdmin
}

func hashPassword(pw string) (string, error) {
	if len(pw) < minPasswordLength {
		return "", invalid("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", invalid("password cannot be hashed: %v", err)
	}
	return string(hash), nil
}

func normalizeEmail(p *string) string {
	return strings.ToLower(trimmed(p))
}

func passwordOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
