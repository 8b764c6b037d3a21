package http_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGalleryFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.signIn(t, "alice@example.com")

	// Albums start empty.
	resp, body := env.do(t, http.MethodGet, "/v1/albums", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body["albums"])

	resp, body = env.do(t, http.MethodPost, "/v1/albums", token, map[string]string{"title": "Holiday"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	albumID, _ := body["id"].(string)
	require.NotEmpty(t, albumID)

	// Mint an upload URL and push bytes through it.
	resp, body = env.do(t, http.MethodPost, "/v1/storage/signed-upload", token, map[string]any{
		"album_id": albumID,
		"filename": "beach.jpg",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	storagePath, _ := body["storage_path"].(string)
	uploadURL, _ := body["url"].(string)
	require.NotEmpty(t, storagePath)
	require.NotEmpty(t, uploadURL)

	req, err := http.NewRequest(http.MethodPut, env.server.URL+uploadURL, bytes.NewReader([]byte("jpeg bytes")))
	require.NoError(t, err)
	putResp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	putResp.Body.Close()
	require.Equal(t, http.StatusCreated, putResp.StatusCode)

	// Register the blob as media in the album.
	resp, body = env.do(t, http.MethodPost, "/v1/media", token, map[string]any{
		"album_id":     albumID,
		"storage_path": storagePath,
		"caption":      "low tide",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mediaID, _ := body["id"].(string)
	require.NotEmpty(t, mediaID)

	// Album listing carries a signed download URL that actually serves bytes.
	resp, body = env.do(t, http.MethodGet, "/v1/albums/"+albumID+"/media", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ := body["media"].([]any)
	require.Len(t, items, 1)
	first, _ := items[0].(map[string]any)
	downloadURL, _ := first["url"].(string)
	require.NotEmpty(t, downloadURL)

	getResp, err := env.server.Client().Get(env.server.URL + downloadURL)
	require.NoError(t, err)
	getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	// The feed sees it too.
	resp, body = env.do(t, http.MethodGet, "/v1/feed?sort=new&limit=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = body["media"].([]any)
	require.Len(t, items, 1)

	// Deleting the album keeps the photo, unfiled.
	resp, _ = env.do(t, http.MethodDelete, "/v1/albums/"+albumID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/v1/feed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = body["media"].([]any)
	require.Len(t, items, 1)
	first, _ = items[0].(map[string]any)
	require.Nil(t, first["album_id"])
}

func TestAlbumOwnershipEnforced(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	alice := env.signIn(t, "alice@example.com")
	bob := env.signIn(t, "bob@example.com")

	resp, body := env.do(t, http.MethodPost, "/v1/albums", alice, map[string]string{"title": "Private"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	albumID, _ := body["id"].(string)

	resp, _ = env.do(t, http.MethodGet, "/v1/albums/"+albumID+"/media", bob, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/v1/albums/"+albumID, bob, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/v1/albums/does-not-exist", alice, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Bob's listing stays empty.
	resp, body = env.do(t, http.MethodGet, "/v1/albums", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body["albums"])
}

func TestUploadRejectsBadSignature(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.signIn(t, "alice@example.com")

	resp, body := env.do(t, http.MethodPost, "/v1/storage/signed-upload", token, map[string]any{
		"filename": "a.jpg",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	storagePath, _ := body["storage_path"].(string)

	req, err := http.NewRequest(http.MethodPut,
		env.server.URL+"/v1/storage/upload/"+storagePath+"?exp=9999999999&sig=forged",
		bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	putResp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	putResp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, putResp.StatusCode)
}
