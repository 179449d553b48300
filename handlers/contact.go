package handlers

import (
	"net/http"

	"github.com/taibui324/la-gougah/backend/cms"
)

type ContactHandler struct {
	CMS *cms.Service
}

// Get returns the site contact settings. Public.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	cs, err := h.CMS.GetContactSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// Save patches the contact settings (admin only).
func (h *ContactHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req cms.ContactSettingsInput
	if !decode(w, r, &req) {
		return
	}
	cs, err := h.CMS.UpdateContactSettings(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// Submit accepts a message from the public contact form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req cms.InquiryInput
	if !decode(w, r, &req) {
		return
	}
	inq, err := h.CMS.SubmitInquiry(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"id": inq.ID, "received": true})
}

func (h *ContactHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	list, err := h.CMS.ListInquiries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
