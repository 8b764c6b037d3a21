package sqlite

import (
	"context"

	"github.com/blushhq/blush/internal/gallery/domain"
)

type albumsRepo struct {
	db dbtx
}

func (r *albumsRepo) CreateAlbum(ctx context.Context, a domain.Album) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO albums (id, owner_id, title, created_at)
		VALUES (?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.Title, a.CreatedAt,
	)
	return err
}

func (r *albumsRepo) GetAlbumByID(ctx context.Context, id string) (domain.Album, error) {
	var a domain.Album
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, created_at
		FROM albums
		WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.OwnerID, &a.Title, &a.CreatedAt)
	if err != nil {
		return domain.Album{}, mapNotFound(err)
	}
	return a, nil
}

func (r *albumsRepo) ListAlbumsByOwner(ctx context.Context, ownerID string) ([]domain.Album, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, created_at
		FROM albums
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	albums := make([]domain.Album, 0)
	for rows.Next() {
		var a domain.Album
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Title, &a.CreatedAt); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

func (r *albumsRepo) DeleteAlbum(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	return err
}
