package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/gorilla/mux"
)

func (h *Handler) ListAcademic(w http.ResponseWriter, r *http.Request) {
	list, err := h.portfolio.ListAcademic(r.Context(), AccountFromContext(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateAcademic(w http.ResponseWriter, r *http.Request) {
	var rec models.Academic
	if err := decodeJSON(w, r, &rec); err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.portfolio.CreateAcademic(r.Context(), AccountFromContext(r.Context()).ID, &rec)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateAcademic(w http.ResponseWriter, r *http.Request) {
	var rec models.Academic
	if err := decodeJSON(w, r, &rec); err != nil {
		h.fail(w, r, err)
		return
	}
	rec.ID = mux.Vars(r)["id"]

	updated, err := h.portfolio.UpdateAcademic(r.Context(), AccountFromContext(r.Context()).ID, &rec)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAcademic(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.portfolio.DeleteAcademic(r.Context(), AccountFromContext(r.Context()).ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.portfolio.ListProjects(r.Context(), AccountFromContext(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, list)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var rec models.Project
	if err := decodeJSON(w, r, &rec); err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.portfolio.CreateProject(r.Context(), AccountFromContext(r.Context()).ID, &rec)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var rec models.Project
	if err := decodeJSON(w, r, &rec); err != nil {
		h.fail(w, r, err)
		return
	}
	rec.ID = mux.Vars(r)["id"]

	updated, err := h.portfolio.UpdateProject(r.Context(), AccountFromContext(r.Context()).ID, &rec)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.portfolio.DeleteProject(r.Context(), AccountFromContext(r.Context()).ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]string{"id": id})
}
