package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// allowedTypes is the image allow-list for uploads.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Allowed reports whether the declared content type passes the upload filter.
func Allowed(contentType string) bool {
	return allowedTypes[contentType]
}

// Storage persists uploaded files in a flat directory under generated,
// collision-free names. Files are later served statically by filename.
type Storage struct {
	dir string
}

// NewStorage ensures the media directory exists and returns the store.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save writes one multipart file under a generated name and returns that name.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := Filename(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return name, nil
}

// Filename generates a unique stored name keeping the original extension.
func Filename(original string) string {
	return uuid.New().String() + "-" +
		strconv.FormatInt(time.Now().UnixMilli(), 10) +
		filepath.Ext(original)
}
