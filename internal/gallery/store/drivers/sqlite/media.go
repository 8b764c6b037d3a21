package sqlite

import (
	"context"

	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/blushhq/blush/internal/gallery/store"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
)

type mediaRepo struct {
	db dbtx
}

const mediaColumns = `id, owner_id, album_id, storage_path, caption, mime_type, size_bytes, width, height, created_at`

func (r *mediaRepo) CreateMedia(ctx context.Context, m domain.Media) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO media (`+mediaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OwnerID, mapOptionalString(m.AlbumID), m.StoragePath,
		mapOptionalString(m.Caption), mapOptionalString(m.MimeType),
		mapOptionalInt64(m.SizeBytes), mapOptionalInt64(m.Width), mapOptionalInt64(m.Height),
		m.CreatedAt,
	)
	return err
}

func (r *mediaRepo) GetMediaByID(ctx context.Context, id string) (domain.Media, error) {
	m, err := scanMedia(r.db.QueryRowContext(ctx, `
		SELECT `+mediaColumns+`
		FROM media
		WHERE id = ?`,
		id,
	))
	if err != nil {
		return domain.Media{}, mapNotFound(err)
	}
	return m, nil
}

func (r *mediaRepo) ListMediaByAlbum(ctx context.Context, albumID string) ([]domain.Media, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+mediaColumns+`
		FROM media
		WHERE album_id = ?
		ORDER BY created_at DESC, id DESC`,
		albumID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedia(rows)
}

func (r *mediaRepo) ListFeed(ctx context.Context, q store.FeedQuery) ([]domain.Media, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	order := "created_at DESC, id DESC"
	switch q.Sort {
	case store.FeedSortOld:
		order = "created_at ASC, id ASC"
	case store.FeedSortRandom:
		order = "RANDOM()"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+mediaColumns+`
		FROM media
		ORDER BY `+order+`
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedia(rows)
}

func (r *mediaRepo) DetachMediaFromAlbum(ctx context.Context, albumID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE media SET album_id = NULL WHERE album_id = ?`,
		albumID,
	)
	return err
}

func collectMedia(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.Media, error) {
	media := make([]domain.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}
