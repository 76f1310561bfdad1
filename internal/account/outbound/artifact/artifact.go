package artifact

import (
	"bytes"
	"context"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/danielmsk/accord/internal/pkg/config"
	"github.com/danielmsk/accord/internal/pkg/instrument"
	"github.com/danielmsk/accord/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

const qrImageSize = 256

// Renderer turns a TOTP provisioning URI into a QR image stored as an
// object. The object holds the secret, so the bucket must not be public.
type Renderer struct {
	store storage.Storage
	cfg   config.Config
	ins   instrument.Instrumentation
}

func NewRenderer(store storage.Storage, cfg config.Config, ins instrument.Instrumentation) *Renderer {
	return &Renderer{store: store, cfg: cfg, ins: ins}
}

// RenderEnrollment renders, uploads, and returns the object key of the
// enrollment QR artifact.
func (r *Renderer) RenderEnrollment(ctx context.Context, accountID, uri string) (_ string, err error) {
	ctx, span := r.ins.Tracer("account.outbound.artifact").Start(ctx, "RenderEnrollment")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	code, err := qr.Encode(uri, qr.M, qr.Auto)
	if err != nil {
		return "", err
	}

	code, err = barcode.Scale(code, qrImageSize, qrImageSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", err
	}

	bucket := r.cfg.GetString("modules.account.artifact_bucket")
	key := "accounts/" + accountID + "/enrollment.png"

	if _, err := r.store.PutObject(ctx, bucket, key, &buf, storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: "image/png",
	}); err != nil {
		return "", err
	}

	return key, nil
}
