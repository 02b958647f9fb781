// Package storage abstracts the external object store holding review photos
// and documents. The rest of the service treats stored file URLs as opaque
// strings.
package storage

import (
	"context"
	"io"
	"time"
)

// Preset selects the processing profile applied on upload (sizing,
// thumbnailing). Mirrors the upload presets of the hosted store.
type Preset string

const (
	PresetAvatar      Preset = "avatar"
	PresetReviewPhoto Preset = "review_photo"
	PresetDocument    Preset = "document"
)

type UploadResult struct {
	URL          string
	ThumbnailURL string
}

// ObjectStorage is the external file-store collaborator.
type ObjectStorage interface {
	// Upload stores the file under a generated path and returns its public
	// URL, plus a thumbnail URL for image presets.
	Upload(ctx context.Context, filename string, r io.Reader, preset Preset) (UploadResult, error)

	// Delete removes a stored file; deleting an unknown path is not an error.
	Delete(ctx context.Context, path string) error

	// SignedURL returns a time-limited URL for a stored file.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
