package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"placely/pkg/config"
	apperrors "placely/pkg/errors"
	"placely/pkg/logger"
)

// ────────────────────────────────────────────────
// Mock store for testing
// ────────────────────────────────────────────────

type mockStore struct {
	saved    int
	saveFunc func(ctx context.Context, r io.Reader) (string, error)
}

func (m *mockStore) Save(ctx context.Context, r io.Reader) (string, error) {
	m.saved++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, r)
	}
	return "stored-photo.jpg", nil
}

func newTestService(store *mockStore) PhotoService {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	cfg := &config.Config{
		Log:               log,
		MaxUploadSize:     1 << 20,
		MaxUploadPhotos:   3,
		TrustedPhotoHosts: []string{"res.cloudinary.com"},
	}
	return NewPhotoService(store, cfg)
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

// multipartFiles builds real file headers by round-tripping a multipart body.
func multipartFiles(t *testing.T, count int) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	payload := encodePNG(t)
	for i := 0; i < count; i++ {
		part, err := mw.CreateFormFile("photos", "photo.png")
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write(payload); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 22); err != nil {
		t.Fatalf("parsing multipart form: %v", err)
	}
	return req.MultipartForm.File["photos"]
}

// ────────────────────────────────────────────────
// UploadBinary
// ────────────────────────────────────────────────

func TestUploadBinary(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	names, err := svc.UploadBinary(context.Background(), multipartFiles(t, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 names, got %v", names)
	}
	if store.saved != 2 {
		t.Errorf("expected 2 saves, got %d", store.saved)
	}
}

func TestUploadBinary_TooManyPhotos(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.UploadBinary(context.Background(), multipartFiles(t, 4))

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if store.saved != 0 {
		t.Errorf("nothing must be stored when the batch is rejected, got %d saves", store.saved)
	}
}

func TestUploadBinary_Empty(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.UploadBinary(context.Background(), nil)

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

// ────────────────────────────────────────────────
// UploadByLink
// ────────────────────────────────────────────────

func TestUploadByLink_TrustedHostPassThrough(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	link := "https://res.cloudinary.com/demo/image/upload/sample.jpg"
	name, err := svc.UploadByLink(context.Background(), link)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != link {
		t.Errorf("trusted link must be recorded verbatim, got %q", name)
	}
	if store.saved != 0 {
		t.Errorf("trusted link must not be fetched or stored, got %d saves", store.saved)
	}
}

func TestUploadByLink_FetchesUntrustedHost(t *testing.T) {
	payload := encodePNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	store := &mockStore{}
	svc := newTestService(store)

	name, err := svc.UploadByLink(context.Background(), server.URL+"/photo.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "stored-photo.jpg" {
		t.Errorf("expected stored name, got %q", name)
	}
	if store.saved != 1 {
		t.Errorf("expected 1 save, got %d", store.saved)
	}
}

func TestUploadByLink_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(&mockStore{})

	_, err := svc.UploadByLink(context.Background(), server.URL+"/missing.png")

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUploadByLink_RejectsRelativeLinks(t *testing.T) {
	svc := newTestService(&mockStore{})

	for _, link := range []string{"", "photo.jpg", "ftp://example.com/a.jpg", "//host/a.jpg"} {
		_, err := svc.UploadByLink(context.Background(), link)

		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("link %q: expected INVALID_INPUT, got %v", link, err)
		}
	}
}

func TestUploadByLink_OversizedRemotePhoto(t *testing.T) {
	big := make([]byte, (1<<20)+1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(big)
	}))
	defer server.Close()

	store := &mockStore{}
	svc := newTestService(store)

	_, err := svc.UploadByLink(context.Background(), server.URL+"/big.jpg")

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if store.saved != 0 {
		t.Errorf("oversized photo must not be stored, got %d saves", store.saved)
	}
}
