// Package mediastore uploads product images to the external media host and
// deletes them by public id. Uploads return a stable public URL that is what
// actually gets persisted in the row store.
package mediastore

import (
	"context"
	"errors"
)

var (
	// ErrUploadFailed wraps any transport, auth or quota failure on upload.
	ErrUploadFailed = errors.New("media upload failed")
	// ErrAssetNotFound is returned when deleting an id the host doesn't know.
	ErrAssetNotFound = errors.New("media asset not found")
)

// Upload is the result of a successful image upload.
type Upload struct {
	URL      string
	PublicID string
}

type Store interface {
	Upload(ctx context.Context, data []byte, publicID string) (Upload, error)
	Remove(ctx context.Context, publicID string) error
}
