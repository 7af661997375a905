package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	photoserrors "placely/internal/photos/errors"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// Store persists photo bytes and returns the reference to record on a place.
type Store interface {
	Save(ctx context.Context, r io.Reader) (string, error)
}

// DiskStore writes photos under a single directory, downscaling anything
// wider than maxWidth. Filenames are random, so uploads never collide and
// the original name never reaches the filesystem.
type DiskStore struct {
	dir      string
	maxWidth int
}

func NewDiskStore(dir string, maxWidth int) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &DiskStore{dir: dir, maxWidth: maxWidth}, nil
}

func (s *DiskStore) Save(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", photoserrors.ErrUnsupportedImage, err)
	}

	if width := img.Bounds().Dx(); width > s.maxWidth {
		img = resize.Resize(uint(s.maxWidth), 0, img, resize.Lanczos3)
		data, err = encode(img, format)
		if err != nil {
			return "", err
		}
	}

	name := uuid.NewString() + extensionFor(format)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return name, nil
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

func extensionFor(format string) string {
	switch format {
	case "png":
		return ".png"
	default:
		return ".jpg"
	}
}
