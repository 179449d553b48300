package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taibui324/la-gougah/backend/cms"
	"github.com/taibui324/la-gougah/backend/middleware"
	"github.com/taibui324/la-gougah/backend/models"
)

type AuthHandler struct {
	CMS       *cms.Service
	JWTSecret string
	TokenTTL  time.Duration
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.CMS.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

// Register creates a role=user account and signs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req cms.RegisterInput
	if !decode(w, r, &req) {
		return
	}
	user, err := h.CMS.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.CMS.CurrentUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req cms.ProfileInput
	if !decode(w, r, &req) {
		return
	}
	user, err := h.CMS.UpdateProfile(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	expires := time.Now().Add(h.TokenTTL)
	token, err := h.createToken(user, expires)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, LoginResponse{Token: token, ExpiresAt: expires.UTC(), User: user})
}

func (h *AuthHandler) createToken(user *models.User, expires time.Time) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.JWTSecret))
}
