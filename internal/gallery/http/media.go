package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/pkg/httpx"
	"github.com/blushhq/blush/pkg/slogx"
)

// MediaHandler registers uploaded media and serves the global feed.
type MediaHandler struct {
	MediaService *service.MediaService
	Storage      *service.StorageService
}

type createMediaRequest struct {
	AlbumID     *string `json:"album_id"`
	StoragePath string  `json:"storage_path"`
	Caption     *string `json:"caption"`
	MimeType    *string `json:"mime_type"`
	SizeBytes   *int64  `json:"size_bytes"`
	Width       *int64  `json:"width"`
	Height      *int64  `json:"height"`
}

// HandleCreate godoc
//
//	@Summary		Register Media
//	@Description	Records metadata for a blob previously uploaded through a signed upload URL
//	@Tags			Media
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createMediaRequest	true	"Media metadata; storage_path comes from the signed-upload response"
//	@Success		201		{object}	mediaView			"media record with signed download url"
//	@Failure		400		{object}	httpx.APIError		"error, error_description"
//	@Failure		401		{object}	httpx.APIError		"error, error_description"
//	@Failure		403		{object}	httpx.APIError		"album belongs to another user"
//	@Failure		404		{object}	httpx.APIError		"album not found"
//	@Router			/v1/media [post].
func (h *MediaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	item, err := h.MediaService.CreateMedia(ctx, httpx.UserIDFromContext(ctx), service.CreateMediaInput{
		AlbumID:     req.AlbumID,
		StoragePath: req.StoragePath,
		Caption:     req.Caption,
		MimeType:    req.MimeType,
		SizeBytes:   req.SizeBytes,
		Width:       req.Width,
		Height:      req.Height,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingStoragePath) {
			httpx.NewError(http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, "storage_path is required").WriteError(w)
			return
		}
		writeAlbumError(w, log, err, "failed to create media")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, mediaView{
		Media: item,
		URL:   h.Storage.SignDownloadURL(item.StoragePath),
	})
}

// HandleFeed godoc
//
//	@Summary		Global Feed
//	@Description	Returns a page of everyone's media
//	@Description	sort is one of new, old, random; unknown values fall back to new. limit is capped at 50.
//	@Tags			Media
//	@Produce		json
//	@Security		BearerAuth
//	@Param			sort	query		string				false	"Sort order"	Enums(new, old, random)
//	@Param			limit	query		int					false	"Page size"
//	@Param			offset	query		int					false	"Page offset"
//	@Success		200		{object}	mediaListResponse	"media"
//	@Failure		401		{object}	httpx.APIError		"error, error_description"
//	@Router			/v1/feed [get].
func (h *MediaHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.MediaService.Feed(ctx, r.URL.Query().Get("sort"), limit, offset)
	if err != nil {
		log.Error("failed to load feed", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	views := make([]mediaView, len(items))
	for i, m := range items {
		views[i] = mediaView{Media: m, URL: h.Storage.SignDownloadURL(m.StoragePath)}
	}
	httpx.WriteJSON(w, http.StatusOK, mediaListResponse{Media: views})
}
