package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibui324/la-gougah/backend/cms"
	"github.com/taibui324/la-gougah/backend/models"
)

type PostsHandler struct {
	CMS *cms.Service
}

// List returns all posts, optionally filtered with ?status=.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	f := models.PostFilter{Status: models.PostStatus(r.URL.Query().Get("status"))}
	posts, err := h.CMS.ListPosts(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "post")
	if !ok {
		return
	}
	post, err := h.CMS.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.CMS.GetPostBySlugAdmin(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cms.PostInput
	if !decode(w, r, &req) {
		return
	}
	post, err := h.CMS.CreatePost(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "post")
	if !ok {
		return
	}
	var req cms.PostInput
	if !decode(w, r, &req) {
		return
	}
	post, err := h.CMS.UpdatePost(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "post")
	if !ok {
		return
	}
	if err := h.CMS.DeletePost(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
