package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nvteo/bakeshop-backend/pkg/config"
	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Storage saves uploaded images and yields public URLs for them.
type Storage interface {
	SaveImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

// DiskStorage writes uploads to a local directory served under a public base path.
type DiskStorage struct {
	uploadDir  string
	publicBase string
	maxBytes   int64
}

// NewDiskStorage prepares the upload directory and returns a disk-backed Storage.
func NewDiskStorage(cfg config.MediaConfig) (*DiskStorage, error) {
	if strings.TrimSpace(cfg.UploadDir) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", cfg.UploadDir, err)
	}
	return &DiskStorage{
		uploadDir:  cfg.UploadDir,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
		maxBytes:   cfg.MaxUploadBytes(),
	}, nil
}

// SaveImage validates the upload and persists it under a random filename.
func (s *DiskStorage) SaveImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image file is required")
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image file is too large")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type")
	}

	name := uuid.NewString() + ext
	dest := filepath.Join(s.uploadDir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create upload file")
	}
	defer out.Close()

	reader := io.Reader(file)
	if s.maxBytes > 0 {
		reader = io.LimitReader(file, s.maxBytes+1)
	}
	written, err := io.Copy(out, reader)
	if err != nil {
		os.Remove(dest)
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload file")
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		os.Remove(dest)
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image file is too large")
	}

	return s.publicBase + "/" + name, nil
}

// Remove deletes a previously stored upload. Unknown URLs are ignored.
func (s *DiskStorage) Remove(ctx context.Context, publicURL string) error {
	if publicURL == "" || !strings.HasPrefix(publicURL, s.publicBase+"/") {
		return nil
	}
	name := path.Base(publicURL)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.uploadDir, name))
	if err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove upload file")
	}
	return nil
}
