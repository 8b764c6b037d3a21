package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/blushhq/blush/internal/gallery/service"
	"github.com/blushhq/blush/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateMediaValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	albums := &service.AlbumService{Store: st}
	media := &service.MediaService{Store: st}

	_, err := media.CreateMedia(ctx, "owner-1", service.CreateMediaInput{})
	require.ErrorIs(t, err, service.ErrMissingStoragePath)

	ghost := idx.MustParse("01ARZ3NDEKTSV4RRFFQ69G5FAV").String()
	_, err = media.CreateMedia(ctx, "owner-1", service.CreateMediaInput{
		AlbumID:     &ghost,
		StoragePath: "owner-1/x/1_abcd_a.jpg",
	})
	require.ErrorIs(t, err, service.ErrAlbumNotFound)

	theirs, err := albums.CreateAlbum(ctx, "owner-2", "Not yours")
	require.NoError(t, err)
	_, err = media.CreateMedia(ctx, "owner-1", service.CreateMediaInput{
		AlbumID:     &theirs.ID,
		StoragePath: "owner-1/x/1_abcd_a.jpg",
	})
	require.ErrorIs(t, err, service.ErrNotAlbumOwner)
}

func TestListAlbumMedia(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	albums := &service.AlbumService{Store: st}
	media := &service.MediaService{Store: st}

	album, err := albums.CreateAlbum(ctx, "owner-1", "Trip")
	require.NoError(t, err)

	caption := "sunset"
	var items []domain.Media
	for i := 0; i < 3; i++ {
		item, err := media.CreateMedia(ctx, "owner-1", service.CreateMediaInput{
			AlbumID:     &album.ID,
			StoragePath: fmt.Sprintf("owner-1/%s/%d_abcd_a.jpg", album.ID, i),
			Caption:     &caption,
		})
		require.NoError(t, err)
		items = append(items, item)
	}

	listed, err := media.ListAlbumMedia(ctx, "owner-1", album.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, items[2].ID, listed[0].ID, "newest first")
	require.NotNil(t, listed[0].Caption)
	require.Equal(t, "sunset", *listed[0].Caption)

	_, err = media.ListAlbumMedia(ctx, "owner-2", album.ID)
	require.ErrorIs(t, err, service.ErrNotAlbumOwner)
}

func TestFeedSortAndPaging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	media := &service.MediaService{Store: st}

	var ids []string
	for i := 0; i < 5; i++ {
		item, err := media.CreateMedia(ctx, fmt.Sprintf("owner-%d", i%2), service.CreateMediaInput{
			StoragePath: fmt.Sprintf("owner/%d_abcd_a.jpg", i),
		})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	newest, err := media.Feed(ctx, "new", 0, 0)
	require.NoError(t, err)
	require.Len(t, newest, 5, "feed spans all owners")
	require.Equal(t, ids[4], newest[0].ID)
	require.Equal(t, ids[0], newest[4].ID)

	oldest, err := media.Feed(ctx, "old", 0, 0)
	require.NoError(t, err)
	require.Equal(t, ids[0], oldest[0].ID)

	// Unknown sort falls back to newest first.
	fallback, err := media.Feed(ctx, "sideways", 0, 0)
	require.NoError(t, err)
	require.Equal(t, ids[4], fallback[0].ID)

	page, err := media.Feed(ctx, "new", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[3], page[0].ID)
	require.Equal(t, ids[2], page[1].ID)

	random, err := media.Feed(ctx, "random", 3, 0)
	require.NoError(t, err)
	require.Len(t, random, 3)
}
