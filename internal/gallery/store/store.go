package store

import (
	"context"
	"errors"

	"github.com/blushhq/blush/internal/gallery/domain"
)

var ErrNotFound = errors.New("store: not found")

// FeedSort selects the ordering of the global media feed.
type FeedSort string

const (
	FeedSortNew    FeedSort = "new"
	FeedSortOld    FeedSort = "old"
	FeedSortRandom FeedSort = "random"
)

// FeedQuery is the paging window for the global feed. Limit of zero means
// the driver default; drivers clamp Limit to a sane maximum.
type FeedQuery struct {
	Sort   FeedSort
	Limit  int
	Offset int
}

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Albums() Albums
	Media() Media

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Albums interface {
	// CreateAlbum inserts a new album (id is provided by app via ULID).
	CreateAlbum(ctx context.Context, a domain.Album) error

	// GetAlbumByID returns an album by id regardless of owner.
	GetAlbumByID(ctx context.Context, id string) (domain.Album, error)

	// ListAlbumsByOwner returns the owner's albums, newest first.
	ListAlbumsByOwner(ctx context.Context, ownerID string) ([]domain.Album, error)

	// DeleteAlbum removes an album. Media in it survives with album_id cleared.
	DeleteAlbum(ctx context.Context, id string) error
}

type Media interface {
	// CreateMedia inserts a new media record (id is provided by app via ULID).
	CreateMedia(ctx context.Context, m domain.Media) error

	// GetMediaByID returns a media record by id.
	GetMediaByID(ctx context.Context, id string) (domain.Media, error)

	// ListMediaByAlbum returns an album's media, newest first.
	ListMediaByAlbum(ctx context.Context, albumID string) ([]domain.Media, error)

	// ListFeed returns a page of the global feed across all owners.
	ListFeed(ctx context.Context, q FeedQuery) ([]domain.Media, error)

	// DetachMediaFromAlbum clears album_id on all media in the album.
	DetachMediaFromAlbum(ctx context.Context, albumID string) error
}
