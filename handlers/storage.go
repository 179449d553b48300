package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibui324/la-gougah/backend/cms"
)

type StorageHandler struct {
	CMS *cms.Service
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" validate:"omitempty,max=127"`
}

// UploadURL issues a presigned PUT target. The client uploads the bytes
// directly and stores the returned storageId on the post or banner.
func (h *StorageHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req UploadURLRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	ticket, err := h.CMS.GenerateUploadURL(r.Context(), req.ContentType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// Redirect sends the client to a short-lived download URL, or 404s.
func (h *StorageHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	url, ok := h.CMS.StorageURL(r.Context(), chi.URLParam(r, "storageId"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "file not found")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url, http.StatusFound)
}

// URL returns {"url": string|null} for a storage id.
func (h *StorageHandler) URL(w http.ResponseWriter, r *http.Request) {
	resp := map[string]*string{"url": nil}
	if url, ok := h.CMS.StorageURL(r.Context(), chi.URLParam(r, "storageId")); ok {
		resp["url"] = &url
	}
	writeJSON(w, http.StatusOK, resp)
}
