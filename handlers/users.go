package handlers

import (
	"net/http"

	"github.com/taibui324/la-gougah/backend/cms"
)

// UsersHandler is the admin user management API.
type UsersHandler struct {
	CMS *cms.Service
}

func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.CMS.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "user")
	if !ok {
		return
	}
	user, err := h.CMS.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUser body: { "email", "password", "name"?, "role"?, "status"? }. Role defaults to user.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req cms.UserInput
	if !decode(w, r, &req) {
		return
	}
	user, err := h.CMS.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser body: { "email"?, "name"?, "password"?, "role"?, "status"? }
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "user")
	if !ok {
		return
	}
	var req cms.UserInput
	if !decode(w, r, &req) {
		return
	}
	user, err := h.CMS.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user. Admins cannot delete themselves or the last admin.
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "user")
	if !ok {
		return
	}
	if err := h.CMS.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
