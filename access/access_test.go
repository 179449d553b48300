package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ctxWithRole(role models.Role) context.Context {
	return WithPrincipal(context.Background(), Principal{
		UserID: primitive.NewObjectID(),
		Email:  string(role) + "@lagougah.vn",
		Role:   role,
	})
}

func TestRequireAuth(t *testing.T) {
	_, err := RequireAuth(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = RequireAuth(WithPrincipal(context.Background(), Principal{Role: models.RoleAdmin}))
	assert.ErrorIs(t, err, ErrUnauthenticated, "zero user id is not a principal")

	p, err := RequireAuth(ctxWithRole(models.RoleUser))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, p.Role)
}

func TestRequireRoleHelpers(t *testing.T) {
	tests := []struct {
		role          models.Role
		adminOK       bool
		adminEditorOK bool
	}{
		{models.RoleAdmin, true, true},
		{models.RoleEditor, false, true},
		{models.RoleUser, false, false},
		{models.Role("unknown"), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ctx := ctxWithRole(tt.role)

			_, err := RequireAdmin(ctx)
			if tt.adminOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}

			_, err = RequireAdminOrEditor(ctx)
			if tt.adminEditorOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeUserRoleDeniedEverywhere(t *testing.T) {
	ctx := ctxWithRole(models.RoleUser)
	for op := range capabilities {
		_, err := Authorize(ctx, op)
		assert.ErrorIs(t, err, ErrForbidden, string(op))
	}
}

func TestAuthorizeCapabilityTable(t *testing.T) {
	adminOnlyOps := []Operation{
		OpListUsers, OpGetUser, OpCreateUser, OpUpdateUser, OpDeleteUser,
		OpUpdateContactSettings, OpListInquiries,
	}
	for _, op := range adminOnlyOps {
		_, err := Authorize(ctxWithRole(models.RoleAdmin), op)
		assert.NoError(t, err, op)
		_, err = Authorize(ctxWithRole(models.RoleEditor), op)
		assert.ErrorIs(t, err, ErrForbidden, op)
	}

	staffOps := []Operation{
		OpCreatePost, OpUpdatePost, OpDeletePost,
		OpCreateBanner, OpUpdateBanner, OpDeleteBanner,
		OpCreateMenuItem, OpUpdateMenuItem, OpDeleteMenuItem,
		OpGenerateUploadURL,
	}
	for _, op := range staffOps {
		_, err := Authorize(ctxWithRole(models.RoleAdmin), op)
		assert.NoError(t, err, op)
		_, err = Authorize(ctxWithRole(models.RoleEditor), op)
		assert.NoError(t, err, op)
		_, err = Authorize(ctxWithRole(models.RoleUser), op)
		assert.ErrorIs(t, err, ErrForbidden, op)
	}
}

func TestAuthorizeUnknownOperation(t *testing.T) {
	_, err := Authorize(context.Background(), Operation("nope"))
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = Authorize(ctxWithRole(models.RoleAdmin), Operation("nope"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeAnonymous(t *testing.T) {
	_, err := Authorize(context.Background(), OpCreatePost)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
