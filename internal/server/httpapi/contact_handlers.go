package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type contactResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.Message
	if err := decodeJSON(w, r, &msg); err != nil {
		h.fail(w, r, err)
		return
	}

	saved, err := h.contact.Submit(r.Context(), &msg)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, contactResponse{Message: "message received", ID: saved.ID})
}

func (h *Handler) ListContact(w http.ResponseWriter, r *http.Request) {
	list, err := h.contact.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, list)
}
