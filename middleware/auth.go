package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims are the JWT claims issued at login. Role is informational; the
// user is reloaded on every request.
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalLookup loads the current state of the user a token was issued to.
type PrincipalLookup func(ctx context.Context, id primitive.ObjectID) (access.Principal, error)

var errNoToken = errors.New("missing authorization header")

// Auth rejects requests without a valid bearer token for an active user.
func Auth(jwtSecret string, lookup PrincipalLookup) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, status, msg := authenticate(r, jwtSecret, lookup)
			if status != 0 {
				http.Error(w, `{"error":"`+msg+`"}`, status)
				return
			}
			next.ServeHTTP(w, r.WithContext(access.WithPrincipal(r.Context(), p)))
		})
	}
}

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func authenticate(r *http.Request, jwtSecret string, lookup PrincipalLookup) (access.Principal, int, string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return access.Principal{}, http.StatusUnauthorized, errNoToken.Error()
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return access.Principal{}, http.StatusUnauthorized, "invalid authorization format"
	}
	claims, err := ParseToken(parts[1], jwtSecret)
	if err != nil {
		return access.Principal{}, http.StatusUnauthorized, "invalid or expired token"
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return access.Principal{}, http.StatusUnauthorized, "invalid user id"
	}
	p, err := lookup(r.Context(), userID)
	if errors.Is(err, access.ErrUnauthenticated) {
		return access.Principal{}, http.StatusUnauthorized, "account is inactive or no longer exists"
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "principal lookup failed", "user", claims.UserID, "error", err)
		return access.Principal{}, http.StatusInternalServerError, "internal error"
	}
	return p, 0, ""
}
