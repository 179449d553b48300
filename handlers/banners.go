package handlers

import (
	"net/http"

	"github.com/taibui324/la-gougah/backend/cms"
	"github.com/taibui324/la-gougah/backend/models"
)

type BannersHandler struct {
	CMS *cms.Service
}

// List returns banners, optionally filtered with ?pageType= and ?position=.
func (h *BannersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.BannerFilter{
		PageType: models.PageType(q.Get("pageType")),
		Position: models.BannerPosition(q.Get("position")),
	}
	banners, err := h.CMS.ListBanners(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, banners)
}

func (h *BannersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "banner")
	if !ok {
		return
	}
	b, err := h.CMS.GetBanner(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BannersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cms.BannerInput
	if !decode(w, r, &req) {
		return
	}
	b, err := h.CMS.CreateBanner(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BannersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "banner")
	if !ok {
		return
	}
	var req cms.BannerInput
	if !decode(w, r, &req) {
		return
	}
	b, err := h.CMS.UpdateBanner(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Reorder body: { "ids": [...] } in display order.
func (h *BannersHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !decode(w, r, &req) {
		return
	}
	ids, err := req.objectIDs()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.CMS.ReorderBanners(r.Context(), ids); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BannersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "banner")
	if !ok {
		return
	}
	if err := h.CMS.DeleteBanner(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
