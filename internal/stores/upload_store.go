package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"serverlog-analyser/internal/shared/filestorages"
	"serverlog-analyser/internal/shared/ulid"
)

var (
	ErrUploadAlreadyExist = errors.New("upload already exists")
)

const (
	uploadsDir      = "uploads"
	fallbackName    = "upload.log"
	maxBasenameSize = 128
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// StoredUpload is where an upload landed and how many bytes were written.
type StoredUpload struct {
	Key  string
	Size int64
}

// UploadStore writes uploaded log files under a fresh key each time.
//
// Keys are "uploads/<ULID>_<basename>". Publishing is create-if-not-exists, so
// a key collision surfaces as ErrUploadAlreadyExist instead of replacing bytes
// that a running job may be reading.
//
//go:generate mockgen -source=upload_store.go -destination=./mocks/upload_store_mock.go -package=mocks
type UploadStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (*StoredUpload, error)
}

type uploadStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewUploadStore(fileStorage filestorages.FileStorage) UploadStore {
	return &uploadStore{fileStorage: fileStorage, dir: uploadsDir}
}

func (s *uploadStore) Put(ctx context.Context, filename string, r io.Reader) (*StoredUpload, error) {
	key := fmt.Sprintf("%s/%s_%s", s.dir, ulid.NewULID(), SafeBasename(filename))

	result, err := s.fileStorage.Put(ctx, key, r)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return nil, ErrUploadAlreadyExist
		}
		return nil, fmt.Errorf("failed to put upload: %w", err)
	}
	return &StoredUpload{Key: result.FileKey, Size: result.Size}, nil
}

// SafeBasename reduces a client supplied name to a single path segment of safe characters.
func SafeBasename(filename string) string {
	name := strings.ReplaceAll(filename, `\`, "/")
	name = path.Base(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return fallbackName
	}
	if len(name) > maxBasenameSize {
		name = name[len(name)-maxBasenameSize:]
	}
	return name
}
