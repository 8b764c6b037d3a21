package http

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/pkg/httpx"
	"github.com/blushhq/blush/pkg/slogx"
)

// Uploads larger than this are cut off at the transport.
const maxUploadBytes = 50 << 20 // 50 MiB

// StorageHandler serves blob upload and download through expiring signed
// URLs. The session only guards minting the URLs; the URLs themselves are the
// credential for the transfer endpoints.
type StorageHandler struct {
	Storage *service.StorageService
}

type signUploadRequest struct {
	AlbumID  *string `json:"album_id"`
	Filename string  `json:"filename"`
}

// HandleSignUpload godoc
//
//	@Summary		Mint Upload URL
//	@Description	Reserves a storage path for the caller and returns a signed PUT URL for it
//	@Tags			Storage
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		signUploadRequest		true	"Destination album (optional) and original filename"
//	@Success		200		{object}	service.UploadTarget	"storage_path, url, expires_at"
//	@Failure		400		{object}	httpx.APIError			"error, error_description"
//	@Failure		401		{object}	httpx.APIError			"error, error_description"
//	@Router			/v1/storage/signed-upload [post].
func (h *StorageHandler) HandleSignUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		httpx.NewError(http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, "filename is required").WriteError(w)
		return
	}

	target, err := h.Storage.NewUploadTarget(httpx.UserIDFromContext(ctx), req.AlbumID, req.Filename)
	if err != nil {
		log.Error("failed to mint upload target", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, target)
}

// HandleUpload godoc
//
//	@Summary		Upload Blob
//	@Description	Accepts the blob bytes for a previously minted signed upload URL
//	@Tags			Storage
//	@Accept			octet-stream
//	@Produce		json
//	@Param			path	path		string	true	"Storage path from the signed-upload response"
//	@Param			exp		query		string	true	"Signature expiry (unix seconds)"
//	@Param			sig		query		string	true	"URL signature"
//	@Success		201		{object}	map[string]any	"ok, size_bytes"
//	@Failure		401		{object}	httpx.APIError	"signature invalid or expired"
//	@Router			/v1/storage/upload/{path} [put].
func (h *StorageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	storagePath := r.PathValue("path")
	q := r.URL.Query()
	if err := h.Storage.VerifyUpload(storagePath, q.Get("exp"), q.Get("sig")); err != nil {
		httpx.NewError(http.StatusUnauthorized, httpx.ErrorCodeUnauthenticated, "Upload URL is invalid or expired").WriteError(w)
		return
	}

	n, err := h.Storage.SaveUpload(storagePath, http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		log.Error("failed to store upload", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"ok":         true,
		"size_bytes": n,
	})
}

// HandleFile godoc
//
//	@Summary		Download Blob
//	@Description	Streams a stored blob for a valid signed download URL
//	@Tags			Storage
//	@Produce		octet-stream
//	@Param			path	path		string	true	"Storage path"
//	@Param			exp		query		string	true	"Signature expiry (unix seconds)"
//	@Param			sig		query		string	true	"URL signature"
//	@Success		200		"blob bytes"
//	@Failure		401		{object}	httpx.APIError	"signature invalid or expired"
//	@Failure		404		{object}	httpx.APIError	"no such blob"
//	@Router			/v1/storage/file/{path} [get].
func (h *StorageHandler) HandleFile(w http.ResponseWriter, r *http.Request) {
	storagePath := r.PathValue("path")
	q := r.URL.Query()
	if err := h.Storage.VerifyDownload(storagePath, q.Get("exp"), q.Get("sig")); err != nil {
		httpx.NewError(http.StatusUnauthorized, httpx.ErrorCodeUnauthenticated, "Download URL is invalid or expired").WriteError(w)
		return
	}

	f, err := h.Storage.Open(storagePath)
	if err != nil {
		if os.IsNotExist(err) {
			httpx.NewError(http.StatusNotFound, httpx.ErrorCodeNotFound, "No such file").WriteError(w)
			return
		}
		slogx.FromContext(r.Context()).Error("failed to open blob", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		httpx.ErrServerError.WriteError(w)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
