// Package blob implements the thumbnail upload store on top of a
// gocloud.dev bucket, so local disk and GCS deployments share one code
// path.
package blob

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"folio/config"
	"folio/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selected by the configured URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

type bucketStore struct {
	bucket  *blob.Bucket
	baseURL string
	logger  *slog.Logger
}

// Params holds dependencies for the thumbnail store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewThumbnailStore opens the configured bucket, closed on shutdown. With
// no storage configured it returns nil and uploads are disabled; projects
// then carry external URLs or generated placeholders only.
func NewThumbnailStore(params Params) (service.ThumbnailStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		params.Logger.Info("No storage bucket configured, thumbnail uploads disabled")

		return nil, nil
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &bucketStore{
		bucket:  bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:  params.Logger,
	}, nil
}

// Upload writes the bytes under a generated unique key and returns the
// durable download URL.
func (s *bucketStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := uuid.NewString() + path.Ext(filename)

	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "open bucket writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()

		return "", errors.Wrap(err, "write blob")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "close bucket writer")
	}

	s.logger.Info("Stored thumbnail blob", slog.String("key", key))

	return s.baseURL + "/" + key, nil
}
