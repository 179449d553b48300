// Package access resolves the signed-in principal and decides which roles may
// run which CMS operations.
package access

import (
	"context"
	"errors"
	"slices"

	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID primitive.ObjectID
	Email  string
	Role   models.Role
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RequireAuth returns the principal or ErrUnauthenticated.
func RequireAuth(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || p.UserID.IsZero() {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}

// RequireRole returns the principal when its role is one of roles.
func RequireRole(ctx context.Context, roles ...models.Role) (Principal, error) {
	p, err := RequireAuth(ctx)
	if err != nil {
		return Principal{}, err
	}
	if !slices.Contains(roles, p.Role) {
		return Principal{}, ErrForbidden
	}
	return p, nil
}

func RequireAdmin(ctx context.Context) (Principal, error) {
	return RequireRole(ctx, models.RoleAdmin)
}

func RequireAdminOrEditor(ctx context.Context) (Principal, error) {
	return RequireRole(ctx, models.RoleAdmin, models.RoleEditor)
}

// Authorize checks the principal against the capability table entry for op.
// Operations missing from the table are denied.
func Authorize(ctx context.Context, op Operation) (Principal, error) {
	roles, ok := capabilities[op]
	if !ok {
		if _, err := RequireAuth(ctx); err != nil {
			return Principal{}, err
		}
		return Principal{}, ErrForbidden
	}
	return RequireRole(ctx, roles...)
}
