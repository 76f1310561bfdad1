package artifact

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/danielmsk/accord/internal/pkg/config"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/storage"
)

type fakeStorage struct {
	bucket string
	key    string
	body   []byte
	opts   storage.PutOptions
	err    error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	f.bucket = bucket
	f.key = key
	f.opts = opts

	body, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.body = body

	if f.err != nil {
		return storage.ObjectInfo{}, f.err
	}

	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(body))}, nil
}

func (f *fakeStorage) StatObject(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, nil
}

func (f *fakeStorage) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

func (f *fakeStorage) Close() error { return nil }

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  account:
    artifact_bucket: enrollment-artifacts
`))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	return cfg
}

func TestRenderEnrollment(t *testing.T) {
	uri := "otpauth://totp/Accord:alice?secret=JBSWY3DPEHPK3PXP&issuer=Accord"

	t.Run("UploadsQRImage", func(t *testing.T) {

		// Arrange
		store := &fakeStorage{}
		r := NewRenderer(store, testConfig(t), instrument.NewNoop())

		// Act
		ref, err := r.RenderEnrollment(context.Background(), "acc-1", uri)

		// Assert
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if ref != "accounts/acc-1/enrollment.png" {
			t.Fatalf("unexpected ref %q", ref)
		}
		if store.bucket != "enrollment-artifacts" {
			t.Fatalf("expected configured bucket, got %q", store.bucket)
		}
		if store.key != ref {
			t.Fatalf("expected object key to match ref, got %q", store.key)
		}
		if store.opts.ContentType != "image/png" {
			t.Fatalf("expected image/png, got %q", store.opts.ContentType)
		}
		if store.opts.Size != int64(len(store.body)) {
			t.Fatalf("expected size %d, got %d", len(store.body), store.opts.Size)
		}

		img, err := png.Decode(bytes.NewReader(store.body))
		if err != nil {
			t.Fatalf("expected a decodable png, got %v", err)
		}
		if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
			t.Fatalf("expected a 256x256 image, got %v", img.Bounds())
		}
	})

	t.Run("UploadFailure", func(t *testing.T) {

		// Arrange
		store := &fakeStorage{err: errors.New("bucket unavailable")}
		r := NewRenderer(store, testConfig(t), instrument.NewNoop())

		// Act
		_, err := r.RenderEnrollment(context.Background(), "acc-1", uri)

		// Assert
		if err == nil {
			t.Fatalf("expected upload error")
		}
	})
}
