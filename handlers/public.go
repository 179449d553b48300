package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taibui324/la-gougah/backend/cms"
	"github.com/taibui324/la-gougah/backend/models"
)

// PublicHandler serves the anonymous read surface used by the site and its static build.
type PublicHandler struct {
	CMS *cms.Service
}

func (h *PublicHandler) Posts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	posts, err := h.CMS.GetPublishedPosts(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PublicHandler) Post(w http.ResponseWriter, r *http.Request) {
	post, err := h.CMS.GetPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PublicHandler) StaticPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.CMS.GetStaticPaths(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paths)
}

func (h *PublicHandler) MenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.CMS.GetVisibleMenuItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *PublicHandler) HomeSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.CMS.GetHomeSections(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

// Banners: ?pageType=&position=
func (h *PublicHandler) Banners(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	banners, err := h.CMS.GetActiveBanners(r.Context(),
		models.PageType(q.Get("pageType")), models.BannerPosition(q.Get("position")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

func (h *PublicHandler) Sliders(w http.ResponseWriter, r *http.Request) {
	groups, err := h.CMS.GetBannerSliders(r.Context(), models.PageType(r.URL.Query().Get("pageType")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
