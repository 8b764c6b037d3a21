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

var (
	ErrInvalidTitle  = errors.New("album title must not be empty")
	ErrAlbumNotFound = errors.New("album not found")
	ErrNotAlbumOwner = errors.New("album belongs to another user")
)

const maxTitleLength = 200

// AlbumService manages a user's albums. All mutations are owner-checked so a
// caller can never touch another user's album through a guessed ID.
type AlbumService struct {
	Store store.Store

	Now func() time.Time
}

func (s *AlbumService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateAlbum creates a new empty album owned by ownerID.
func (s *AlbumService) CreateAlbum(ctx context.Context, ownerID, title string) (domain.Album, error) {
	log := slogx.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLength {
		return domain.Album{}, ErrInvalidTitle
	}

	album := domain.Album{
		ID:        idx.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: s.now(),
	}

	if err := s.Store.Albums().CreateAlbum(ctx, album); err != nil {
		log.Error("failed to create album", slog.Any("error", err))
		return domain.Album{}, err
	}

	log.Info("album created",
		slog.String("album_id", album.ID),
		slog.String("owner_id", ownerID),
	)
	return album, nil
}

// ListAlbums returns the owner's albums, newest first.
func (s *AlbumService) ListAlbums(ctx context.Context, ownerID string) ([]domain.Album, error) {
	return s.Store.Albums().ListAlbumsByOwner(ctx, ownerID)
}

// GetAlbum returns an album owned by ownerID.
func (s *AlbumService) GetAlbum(ctx context.Context, ownerID, albumID string) (domain.Album, error) {
	album, err := s.Store.Albums().GetAlbumByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Album{}, ErrAlbumNotFound
		}
		return domain.Album{}, err
	}
	if album.OwnerID != ownerID {
		return domain.Album{}, ErrNotAlbumOwner
	}
	return album, nil
}

// DeleteAlbum removes an album. Media inside survives with its album link
// cleared, so deleting an album never deletes photos. Detach and delete run
// in one transaction.
func (s *AlbumService) DeleteAlbum(ctx context.Context, ownerID, albumID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.GetAlbum(ctx, ownerID, albumID); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Media().DetachMediaFromAlbum(ctx, albumID); err != nil {
			return err
		}
		return tx.Albums().DeleteAlbum(ctx, albumID)
	})
	if err != nil {
		log.Error("failed to delete album",
			slog.String("album_id", albumID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("album deleted",
		slog.String("album_id", albumID),
		slog.String("owner_id", ownerID),
	)
	return nil
}
