package service

import (
	"context"
	"io"
)

// ThumbnailStore accepts a byte upload keyed by a generated unique name
// and returns a durable download URL for it. Implemented against a
// gocloud.dev blob bucket in infra.
type ThumbnailStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
