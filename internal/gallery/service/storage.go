package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blushhq/blush/pkg/cryptox"
)

var (
	ErrInvalidStoragePath = errors.New("invalid storage path")
	ErrBadSignature       = errors.New("signed url is invalid or expired")
)

const (
	purposeUpload   = "upload"
	purposeDownload = "download"

	unfiledSegment = "no-album"
)

// UploadTarget is a one-time destination for a blob upload. The client PUTs
// the bytes to URL before the signature expires, then registers the metadata
// with the returned storage path.
type UploadTarget struct {
	StoragePath string    `json:"storage_path"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// StorageService stores media blobs on local disk and gates access to them
// with expiring HMAC-signed URLs. Paths are always relative to BaseDir and
// follow ownerID/albumID/ts_rand_name so blobs group naturally per user.
type StorageService struct {
	BaseDir string
	Secret  []byte
	URLTTL  time.Duration

	Now func() time.Time
}

func (s *StorageService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewUploadTarget reserves a storage path for ownerID and returns a signed
// PUT URL for it. A nil albumID files the blob under the unfiled segment.
func (s *StorageService) NewUploadTarget(ownerID string, albumID *string, filename string) (UploadTarget, error) {
	segment := unfiledSegment
	if albumID != nil && *albumID != "" {
		segment = *albumID
	}

	var rnd [4]byte
	if _, err := rand.Read(rnd[:]); err != nil {
		return UploadTarget{}, fmt.Errorf("failed to generate upload path: %w", err)
	}

	now := s.now()
	name := fmt.Sprintf("%d_%s_%s", now.Unix(), hex.EncodeToString(rnd[:]), safeFilename(filename))
	storagePath := path.Join(ownerID, segment, name)

	expiresAt := now.Add(s.URLTTL)
	return UploadTarget{
		StoragePath: storagePath,
		URL:         s.signURL("/v1/storage/upload/", purposeUpload, storagePath, expiresAt),
		ExpiresAt:   expiresAt,
	}, nil
}

// SignDownloadURL returns an expiring GET URL for a stored blob.
func (s *StorageService) SignDownloadURL(storagePath string) string {
	return s.signURL("/v1/storage/file/", purposeDownload, storagePath, s.now().Add(s.URLTTL))
}

func (s *StorageService) signURL(prefix, purpose, storagePath string, expiresAt time.Time) string {
	exp := strconv.FormatInt(expiresAt.Unix(), 10)
	sig := s.sign(purpose, storagePath, exp)
	return prefix + storagePath + "?exp=" + exp + "&sig=" + url.QueryEscape(sig)
}

func (s *StorageService) sign(purpose, storagePath, exp string) string {
	return cryptox.SignMessage(s.Secret, purpose+":"+storagePath+":"+exp)
}

// VerifyUpload checks the signature on an upload URL.
func (s *StorageService) VerifyUpload(storagePath, exp, sig string) error {
	return s.verify(purposeUpload, storagePath, exp, sig)
}

// VerifyDownload checks the signature on a download URL.
func (s *StorageService) VerifyDownload(storagePath, exp, sig string) error {
	return s.verify(purposeDownload, storagePath, exp, sig)
}

func (s *StorageService) verify(purpose, storagePath, exp, sig string) error {
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	if !time.Unix(unix, 0).After(s.now()) {
		return ErrBadSignature
	}
	if !cryptox.SecureCompare(sig, s.sign(purpose, storagePath, exp)) {
		return ErrBadSignature
	}
	return nil
}

// SaveUpload writes a blob to its storage path, creating parent directories.
func (s *StorageService) SaveUpload(storagePath string, r io.Reader) (int64, error) {
	full, err := s.resolve(storagePath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(full)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return n, err
	}
	return n, f.Close()
}

// Open opens a stored blob for reading.
func (s *StorageService) Open(storagePath string) (*os.File, error) {
	full, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// resolve maps a storage path onto BaseDir, rejecting anything that would
// escape it.
func (s *StorageService) resolve(storagePath string) (string, error) {
	if storagePath == "" || strings.Contains(storagePath, "\x00") {
		return "", ErrInvalidStoragePath
	}
	clean := path.Clean("/" + storagePath)
	if clean == "/" {
		return "", ErrInvalidStoragePath
	}
	return filepath.Join(s.BaseDir, filepath.FromSlash(clean)), nil
}

// safeFilename strips a client-supplied filename down to a harmless basename.
func safeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "file"
	}
	return out
}
