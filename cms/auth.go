package cms

import (
	"context"
	"errors"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = &Error{Kind: access.ErrUnauthenticated, Message: "invalid email or password"}

// RegisterInput is the self-service signup payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ProfileInput changes the caller's own account. Changing the password needs the current one.
type ProfileInput struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=8,max=72"`
}

// Authenticate checks credentials and returns the active user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(&email)
	if email == "" || password == "" {
		return nil, invalid("email and password required")
	}
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.log.Info("login rejected", "email", email, "reason", "unknown email")
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.log.Info("login rejected", "email", email, "reason", "wrong password")
		return nil, errBadCredentials
	}
	if !u.IsActive() {
		return nil, &Error{Kind: access.ErrUnauthenticated, Message: "account is inactive"}
	}
	return u, nil
}

// Register creates a role=user account when signup is enabled.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !s.allowSignup {
		return nil, &Error{Kind: access.ErrForbidden, Message: "registration is disabled"}
	}
	u, err := s.newUser(ctx, normalizeEmail(&in.Email), trimmed(&in.Name), in.Password, models.RoleUser, models.UserActive)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "id", u.ID.Hex())
	return u, nil
}

func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	p, err := access.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadUser(ctx, p.UserID)
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (*models.User, error) {
	p, err := access.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.loadUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = trimmed(in.Name)
	}
	if in.NewPassword != nil && *in.NewPassword != "" {
		if in.CurrentPassword == nil ||
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(*in.CurrentPassword)) != nil {
			return nil, invalid("current password is incorrect")
		}
		hash, err := hashPassword(*in.NewPassword)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	u.UpdatedAt = s.now()
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LookupPrincipal reloads the user behind a token so role and status
// changes take effect on the next request.
func (s *Service) LookupPrincipal(ctx context.Context, id primitive.ObjectID) (access.Principal, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		return access.Principal{}, err
	}
	if u == nil || !u.IsActive() {
		return access.Principal{}, access.ErrUnauthenticated
	}
	return access.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// EnsureBootstrapAdmin creates the configured admin when no active admin exists.
// An existing account with that email is promoted instead.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(&email)
	if email == "" || password == "" {
		return nil
	}
	n, err := s.store.AdminsCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	existing, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Role = models.RoleAdmin
		existing.Status = models.UserActive
		existing.UpdatedAt = s.now()
		if err := s.store.UpdateUser(ctx, existing); err != nil {
			return err
		}
		s.log.Info("bootstrap admin promoted", "email", email)
		return nil
	}
	u, err := s.newUser(ctx, email, "Administrator", password, models.RoleAdmin, models.UserActive)
	if errors.Is(err, ErrConflict) || errors.Is(err, store.ErrDuplicate) {
		// another instance won the race
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("bootstrap admin created", "id", u.ID.Hex(), "email", email)
	return nil
}
