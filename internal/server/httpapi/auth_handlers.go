package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string                   `json:"token"`
	ExpiresAt time.Time                `json:"expires_at"`
	Account   models.AccountProjection `json:"account"`
}

func authResponse(res *services.AuthResult) AuthResponse {
	return AuthResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, Account: res.Account.Projection()}
}

// PictureUploadResponse tells the client where to PUT the image bytes and
// which key to save in its profile afterwards.
type PictureUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

type pictureDownloadResponse struct {
	URL string `json:"url"`
}

type bioRequest struct {
	Bio string `json:"bio"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "account registered", "account_id", res.Account.ID)
	SendJSON(w, http.StatusCreated, authResponse(res))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	SendJSON(w, http.StatusOK, authResponse(res))
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, AccountFromContext(r.Context()).Projection())
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		h.fail(w, r, err)
		return
	}

	account, err := h.accounts.UpdateProfile(r.Context(), AccountFromContext(r.Context()).ID, upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, account.Projection())
}

func (h *Handler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	var req bioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	account, err := h.accounts.UpdateBio(r.Context(), AccountFromContext(r.Context()).ID, req.Bio)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, account.Projection())
}

func (h *Handler) PictureUpload(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.accounts.PictureUploadURL(r.Context(), AccountFromContext(r.Context()).ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, PictureUploadResponse{UploadURL: url, Key: key})
}

func (h *Handler) PictureDownload(w http.ResponseWriter, r *http.Request) {
	url, err := h.accounts.PictureDownloadURL(r.Context(), AccountFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	SendJSON(w, http.StatusOK, pictureDownloadResponse{URL: url})
}
