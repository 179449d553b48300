package cms

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/models"
	"github.com/taibui324/la-gougah/backend/store/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestUserManagementIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	for _, role := range []models.Role{models.RoleEditor, models.RoleUser} {
		t.Run(string(role), func(t *testing.T) {
			ctx := f.as(t, role)
			_, err := f.svc.ListUsers(ctx)
			assert.ErrorIs(t, err, access.ErrForbidden)
			_, err = f.svc.CreateUser(ctx, UserInput{Email: ptr("x@lagougah.vn"), Password: ptr("password1")})
			assert.ErrorIs(t, err, access.ErrForbidden)
		})
	}
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	admin := f.as(t, models.RoleAdmin)

	u, err := f.svc.CreateUser(admin, UserInput{
		Email:    ptr("  Linh@LaGougah.vn "),
		Name:     ptr("Linh"),
		Password: ptr("password1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "linh@lagougah.vn", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.UserActive, u.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password1")))

	body, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")

	_, err = f.svc.CreateUser(admin, UserInput{Email: ptr("LINH@lagougah.vn"), Password: ptr("password2")})
	assert.ErrorIs(t, err, ErrConflict)

	tests := []struct {
		name string
		in   UserInput
	}{
		{"no password", UserInput{Email: ptr("a@lagougah.vn")}},
		{"short password", UserInput{Email: ptr("a@lagougah.vn"), Password: ptr("short")}},
		{"bad role", UserInput{Email: ptr("a@lagougah.vn"), Password: ptr("password1"), Role: ptr("owner")}},
		{"bad status", UserInput{Email: ptr("a@lagougah.vn"), Password: ptr("password1"), Status: ptr("banned")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateUser(admin, tt.in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	admin := f.as(t, models.RoleAdmin)

	u, err := f.svc.CreateUser(admin, UserInput{Email: ptr("a@lagougah.vn"), Password: ptr("password1")})
	require.NoError(t, err)
	_, err = f.svc.CreateUser(admin, UserInput{Email: ptr("b@lagougah.vn"), Password: ptr("password1")})
	require.NoError(t, err)

	got, err := f.svc.UpdateUser(admin, u.ID, UserInput{Role: ptr("Editor"), Password: ptr("password2")})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, got.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("password2")))

	_, err = f.svc.UpdateUser(admin, u.ID, UserInput{Email: ptr("b@lagougah.vn")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.UpdateUser(admin, u.ID, UserInput{Email: ptr("a@lagougah.vn")})
	assert.NoError(t, err, "keeping the same email is fine")
}

func TestLastAdminIsProtected(t *testing.T) {
	f := newFixture(t)
	admin := f.as(t, models.RoleAdmin)
	p, _ := access.PrincipalFromContext(admin)

	other, err := f.svc.CreateUser(admin, UserInput{Email: ptr("second@lagougah.vn"), Password: ptr("password1"), Role: ptr("admin")})
	require.NoError(t, err)

	_, err = f.svc.UpdateUser(admin, other.ID, UserInput{Role: ptr("editor")})
	require.NoError(t, err, "two admins, one may step down")

	_, err = f.svc.UpdateUser(admin, p.UserID, UserInput{Role: ptr("editor")})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = f.svc.UpdateUser(admin, p.UserID, UserInput{Status: ptr("inactive")})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	admin := f.as(t, models.RoleAdmin)
	p, _ := access.PrincipalFromContext(admin)

	assert.ErrorIs(t, f.svc.DeleteUser(admin, p.UserID), ErrInvalid, "cannot delete self")

	u, err := f.svc.CreateUser(admin, UserInput{Email: ptr("gone@lagougah.vn"), Password: ptr("password1")})
	require.NoError(t, err)
	post, err := f.svc.CreatePost(f.as(t, models.RoleEditor), PostInput{Title: ptr("Kept")})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUser(admin, u.ID))
	_, err = f.svc.GetUser(admin, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteUser(admin, u.ID), ErrNotFound)

	_, err = f.svc.GetPost(admin, post.ID)
	assert.NoError(t, err)
}

// lateAdminCount answers the first AdminsCount with a count read before a
// concurrent demotion landed.
type lateAdminCount struct {
	*memstore.Store
	first int64
	calls int
}

func (s *lateAdminCount) AdminsCount(ctx context.Context) (int64, error) {
	s.calls++
	if s.calls == 1 {
		return s.first, nil
	}
	return s.Store.AdminsCount(ctx)
}

func TestAdminsRemovingEachOtherKeepOne(t *testing.T) {
	tests := []struct {
		name   string
		remove func(svc *Service, ctx context.Context, id primitive.ObjectID) error
	}{
		{"demote", func(svc *Service, ctx context.Context, id primitive.ObjectID) error {
			_, err := svc.UpdateUser(ctx, id, UserInput{Role: ptr("editor")})
			return err
		}},
		{"deactivate", func(svc *Service, ctx context.Context, id primitive.ObjectID) error {
			_, err := svc.UpdateUser(ctx, id, UserInput{Status: ptr("inactive")})
			return err
		}},
		{"delete", func(svc *Service, ctx context.Context, id primitive.ObjectID) error {
			return svc.DeleteUser(ctx, id)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			first := f.as(t, models.RoleAdmin)
			second := f.as(t, models.RoleAdmin)
			p1, _ := access.PrincipalFromContext(first)
			p2, _ := access.PrincipalFromContext(second)

			// the second admin's demotion of the first has already been written
			u, err := f.store.UserByID(context.Background(), p1.UserID)
			require.NoError(t, err)
			u.Role = models.RoleEditor
			require.NoError(t, f.store.UpdateUser(context.Background(), u))

			svc := New(Options{Store: &lateAdminCount{Store: f.store, first: 2}, Logger: noOpLogger(), Now: tickingClock()})
			err = tt.remove(svc, first, p2.UserID)
			assert.ErrorIs(t, err, ErrInvalid)

			n, err := f.store.AdminsCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			kept, err := f.store.UserByID(context.Background(), p2.UserID)
			require.NoError(t, err)
			require.NotNil(t, kept)
			assert.Equal(t, models.RoleAdmin, kept.Role)
			assert.True(t, kept.IsActive())
		})
	}
}
