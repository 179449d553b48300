package handlers

import (
	"net/http"

	"github.com/taibui324/la-gougah/backend/cms"
)

type MenuItemsHandler struct {
	CMS *cms.Service
}

func (h *MenuItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.CMS.GetAllMenuItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MenuItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "menu item")
	if !ok {
		return
	}
	item, err := h.CMS.GetMenuItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cms.MenuItemInput
	if !decode(w, r, &req) {
		return
	}
	item, err := h.CMS.CreateMenuItem(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *MenuItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "menu item")
	if !ok {
		return
	}
	var req cms.MenuItemInput
	if !decode(w, r, &req) {
		return
	}
	item, err := h.CMS.UpdateMenuItem(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MenuItemsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !decode(w, r, &req) {
		return
	}
	ids, err := req.objectIDs()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.CMS.ReorderMenuItems(r.Context(), ids); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "menu item")
	if !ok {
		return
	}
	if err := h.CMS.DeleteMenuItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
