package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/blushhq/blush/internal/gallery/store"
	"github.com/blushhq/blush/pkg/idx"
	"github.com/blushhq/blush/pkg/slogx"
)

var ErrMissingStoragePath = errors.New("media storage path must not be empty")

// CreateMediaInput carries the metadata recorded for an uploaded blob. The
// blob itself is written through StorageService; this only registers it.
type CreateMediaInput struct {
	AlbumID     *string
	StoragePath string
	Caption     *string
	MimeType    *string
	SizeBytes   *int64
	Width       *int64
	Height      *int64
}

// MediaService registers uploaded media and serves album listings and the
// global feed.
type MediaService struct {
	Store store.Store

	Now func() time.Time
}

func (s *MediaService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateMedia records a new media item for ownerID. When an album is given it
// must exist and belong to the same owner.
func (s *MediaService) CreateMedia(ctx context.Context, ownerID string, in CreateMediaInput) (domain.Media, error) {
	log := slogx.FromContext(ctx)

	in.StoragePath = strings.TrimSpace(in.StoragePath)
	if in.StoragePath == "" {
		return domain.Media{}, ErrMissingStoragePath
	}

	if in.AlbumID != nil {
		album, err := s.Store.Albums().GetAlbumByID(ctx, *in.AlbumID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Media{}, ErrAlbumNotFound
			}
			return domain.Media{}, err
		}
		if album.OwnerID != ownerID {
			return domain.Media{}, ErrNotAlbumOwner
		}
	}

	media := domain.Media{
		ID:          idx.New().String(),
		OwnerID:     ownerID,
		AlbumID:     in.AlbumID,
		StoragePath: in.StoragePath,
		Caption:     in.Caption,
		MimeType:    in.MimeType,
		SizeBytes:   in.SizeBytes,
		Width:       in.Width,
		Height:      in.Height,
		CreatedAt:   s.now(),
	}

	if err := s.Store.Media().CreateMedia(ctx, media); err != nil {
		log.Error("failed to create media", slog.Any("error", err))
		return domain.Media{}, err
	}

	log.Info("media created",
		slog.String("media_id", media.ID),
		slog.String("owner_id", ownerID),
	)
	return media, nil
}

// ListAlbumMedia returns an album's media, newest first. The album must
// belong to ownerID.
func (s *MediaService) ListAlbumMedia(ctx context.Context, ownerID, albumID string) ([]domain.Media, error) {
	album, err := s.Store.Albums().GetAlbumByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	if album.OwnerID != ownerID {
		return nil, ErrNotAlbumOwner
	}
	return s.Store.Media().ListMediaByAlbum(ctx, albumID)
}

// Feed returns a page of the global feed across all users. Unknown sort
// values fall back to newest first; the store clamps the page size.
func (s *MediaService) Feed(ctx context.Context, sort string, limit, offset int) ([]domain.Media, error) {
	q := store.FeedQuery{
		Sort:   store.FeedSortNew,
		Limit:  limit,
		Offset: offset,
	}
	switch sort {
	case "old":
		q.Sort = store.FeedSortOld
	case "random":
		q.Sort = store.FeedSortRandom
	}
	return s.Store.Media().ListFeed(ctx, q)
}
