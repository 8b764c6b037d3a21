package domain

import "time"

// Media is one uploaded photo or video, identified by its storage path.
// Deleting an album detaches its media (AlbumID becomes nil) rather than
// deleting files.
type Media struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	AlbumID     *string   `json:"album_id"`
	StoragePath string    `json:"storage_path"`
	Caption     *string   `json:"caption"`
	MimeType    *string   `json:"mime_type"`
	SizeBytes   *int64    `json:"size_bytes"`
	Width       *int64    `json:"width"`
	Height      *int64    `json:"height"`
	CreatedAt   time.Time `json:"created_at"`
}
