package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kaan/markbook/internal/pkg/apperrors"
	"github.com/kaan/markbook/internal/pkg/logger"
)

// allowedImageExts are the upload extensions accepted for profile images.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// LocalStorage stores profile images on the local filesystem.
type LocalStorage struct {
	basePath string // root directory where images are stored
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if it does not exist.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveImage saves an uploaded image and returns the stored filename. The
// filename combines the caller-supplied prefix (e.g. the student roll number)
// with a random component so repeated uploads never collide.
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidImageType, ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	filename := uuid.New().String() + ext
	if prefix != "" {
		filename = sanitizePrefix(prefix) + "_" + filename
	}
	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Msg("Image saved")
	return filename, nil
}

// DeleteImage removes a stored image. Returns nil if the image is already
// gone, so deletes stay idempotent.
func (ls *LocalStorage) DeleteImage(ref string) error {
	if ref == "" {
		return nil // nothing to delete
	}

	// The stored reference is a bare filename; strip any path components a
	// caller might pass in.
	filename := filepath.Base(ref)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid image reference: %s", ref)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Image to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Image deleted")
	return nil
}

// sanitizePrefix keeps filenames shell- and URL-safe.
func sanitizePrefix(prefix string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, prefix)
}
