package storage

import (
	"context"
	"io"
)

// PhotoStore keeps uploaded photos and returns the URL they are served at.
type PhotoStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}
