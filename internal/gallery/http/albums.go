package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/pkg/httpx"
	"github.com/blushhq/blush/pkg/slogx"
)

// AlbumsHandler serves album CRUD for the authenticated user.
type AlbumsHandler struct {
	AlbumService *service.AlbumService
	MediaService *service.MediaService
	Storage      *service.StorageService
}

type createAlbumRequest struct {
	Title string `json:"title"`
}

type albumListResponse struct {
	Albums []domain.Album `json:"albums"`
}

type mediaListResponse struct {
	Media []mediaView `json:"media"`
}

// mediaView is a media record plus a short-lived download URL for its blob.
type mediaView struct {
	domain.Media
	URL string `json:"url"`
}

func (h *AlbumsHandler) mediaViews(items []domain.Media) []mediaView {
	views := make([]mediaView, len(items))
	for i, m := range items {
		views[i] = mediaView{Media: m, URL: h.Storage.SignDownloadURL(m.StoragePath)}
	}
	return views
}

// HandleList godoc
//
//	@Summary		List Albums
//	@Description	Lists the caller's albums, newest first
//	@Tags			Albums
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	albumListResponse	"albums"
//	@Failure		401	{object}	httpx.APIError		"error, error_description"
//	@Router			/v1/albums [get].
func (h *AlbumsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	albums, err := h.AlbumService.ListAlbums(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		log.Error("failed to list albums", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, albumListResponse{Albums: albums})
}

// HandleCreate godoc
//
//	@Summary		Create Album
//	@Description	Creates a new empty album owned by the caller
//	@Tags			Albums
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createAlbumRequest	true	"Album title"
//	@Success		201		{object}	domain.Album		"id, owner_id, title, created_at"
//	@Failure		400		{object}	httpx.APIError		"error, error_description"
//	@Failure		401		{object}	httpx.APIError		"error, error_description"
//	@Router			/v1/albums [post].
func (h *AlbumsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidRequest.WriteError(w)
		return
	}

	album, err := h.AlbumService.CreateAlbum(ctx, httpx.UserIDFromContext(ctx), req.Title)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTitle) {
			httpx.NewError(http.StatusBadRequest, httpx.ErrorCodeInvalidRequest, "title is required").WriteError(w)
			return
		}
		log.Error("failed to create album", "err", err)
		httpx.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, album)
}

// HandleDelete godoc
//
//	@Summary		Delete Album
//	@Description	Deletes one of the caller's albums; media in it is kept but unfiled
//	@Tags			Albums
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Album ID"
//	@Success		200	"album deleted"
//	@Failure		401	{object}	httpx.APIError	"error, error_description"
//	@Failure		403	{object}	httpx.APIError	"album belongs to another user"
//	@Failure		404	{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/albums/{id} [delete].
func (h *AlbumsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.AlbumService.DeleteAlbum(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeAlbumError(w, log, err, "failed to delete album")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleListMedia godoc
//
//	@Summary		List Album Media
//	@Description	Lists an album's media, newest first, each with a signed download URL
//	@Tags			Albums
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string				true	"Album ID"
//	@Success		200	{object}	mediaListResponse	"media"
//	@Failure		401	{object}	httpx.APIError		"error, error_description"
//	@Failure		403	{object}	httpx.APIError		"album belongs to another user"
//	@Failure		404	{object}	httpx.APIError		"error, error_description"
//	@Router			/v1/albums/{id}/media [get].
func (h *AlbumsHandler) HandleListMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	items, err := h.MediaService.ListAlbumMedia(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeAlbumError(w, log, err, "failed to list album media")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mediaListResponse{Media: h.mediaViews(items)})
}

func writeAlbumError(w http.ResponseWriter, log *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrAlbumNotFound):
		httpx.NewError(http.StatusNotFound, httpx.ErrorCodeNotFound, "Album not found").WriteError(w)
	case errors.Is(err, service.ErrNotAlbumOwner):
		httpx.NewError(http.StatusForbidden, httpx.ErrorCodeForbidden, "Not allowed to touch this album").WriteError(w)
	default:
		log.Error(msg, "err", err)
		httpx.ErrServerError.WriteError(w)
	}
}
