package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"time"

	photoserrors "placely/internal/photos/errors"
	"placely/internal/photos/storage"
	"placely/pkg/config"
	apperrors "placely/pkg/errors"
)

type PhotoService interface {
	UploadBinary(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
	UploadByLink(ctx context.Context, link string) (string, error)
}

type photoService struct {
	store  storage.Store
	client *http.Client
	cfg    *config.Config
}

func NewPhotoService(store storage.Store, cfg *config.Config) PhotoService {
	return &photoService{
		store: store,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}

// UploadBinary stores each part of a multipart upload and returns the
// recorded filenames in part order.
func (s *photoService) UploadBinary(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, apperrors.InvalidInput("no photos in request")
	}
	if len(files) > s.cfg.MaxUploadPhotos {
		return nil, apperrors.Validation("too many photos", map[string]any{
			"max":      s.cfg.MaxUploadPhotos,
			"received": len(files),
		})
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > int64(s.cfg.MaxUploadSize) {
			return nil, apperrors.Validation("photo exceeds the size limit", map[string]any{
				"filename": fh.Filename,
				"max":      s.cfg.MaxUploadSize,
			})
		}

		name, err := s.storePart(ctx, fh)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	s.cfg.Log.Info("Photos uploaded", "count", len(names))
	return names, nil
}

func (s *photoService) storePart(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", apperrors.Internal("Failed to open uploaded photo", err)
	}
	defer f.Close()

	name, err := s.store.Save(ctx, f)
	if err != nil {
		if errors.Is(err, photoserrors.ErrUnsupportedImage) {
			return "", apperrors.Validation("unsupported image format", map[string]any{
				"filename": fh.Filename,
			})
		}
		s.cfg.Log.Error("Failed to store photo", "filename", fh.Filename, "error", err)
		return "", apperrors.Internal("Failed to store photo", err)
	}
	return name, nil
}

// UploadByLink ingests a remote photo. Links on a trusted host are recorded
// as-is without fetching; anything else is downloaded, bounded by the
// per-photo size limit, and stored locally.
func (s *photoService) UploadByLink(ctx context.Context, link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", apperrors.InvalidInput("link must be an absolute http(s) URL")
	}

	if slices.Contains(s.cfg.TrustedPhotoHosts, parsed.Hostname()) {
		return link, nil
	}

	name, err := s.fetchAndStore(ctx, link)
	if err != nil {
		return "", err
	}

	s.cfg.Log.Info("Photo ingested by link", "host", parsed.Hostname(), "name", name)
	return name, nil
}

func (s *photoService) fetchAndStore(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", apperrors.InvalidInput("link must be an absolute http(s) URL")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.cfg.Log.Warn("Failed to fetch remote photo", "link", link, "error", err)
		return "", apperrors.Validation("failed to fetch remote photo", map[string]any{
			"error": err.Error(),
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Validation("failed to fetch remote photo", map[string]any{
			"status": resp.StatusCode,
		})
	}

	// One byte past the limit distinguishes "at the limit" from "over it".
	limited := io.LimitReader(resp.Body, int64(s.cfg.MaxUploadSize)+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", apperrors.Internal("Failed to read remote photo", err)
	}
	if len(data) > s.cfg.MaxUploadSize {
		return "", apperrors.Validation("photo exceeds the size limit", map[string]any{
			"max": s.cfg.MaxUploadSize,
		})
	}

	name, err := s.store.Save(ctx, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, photoserrors.ErrUnsupportedImage) {
			return "", apperrors.Validation("unsupported image format", nil)
		}
		s.cfg.Log.Error("Failed to store remote photo", "link", link, "error", err)
		return "", apperrors.Internal("Failed to store remote photo", err)
	}
	return name, nil
}
