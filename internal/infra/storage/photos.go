package storage

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/imaging"
)

// Photos validates an uploaded image, normalizes it and hands it to the
// configured store.
type Photos struct {
	store    PhotoStore
	maxBytes int64
}

func NewPhotos(store PhotoStore, maxBytes int64) *Photos {
	return &Photos{store: store, maxBytes: maxBytes}
}

func (p *Photos) MaxBytes() int64 {
	return p.maxBytes
}

// Upload stores fh under prefix and returns the public URL.
func (p *Photos) Upload(ctx context.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > p.maxBytes {
		return "", httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", httperr.ErrBusiness(httperr.CodeInvalidImage)
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := imaging.Normalize(f)
	if err != nil {
		if errors.Is(err, imaging.ErrNotImage) {
			return "", httperr.ErrBusiness(httperr.CodeInvalidImage)
		}
		return "", err
	}

	name := prefix + "-" + uuid.NewString() + ".webp"
	return p.store.Save(ctx, name, "image/webp", bytes.NewReader(data))
}
