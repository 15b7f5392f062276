package usecase

import (
	"context"
	"io"

	"folio/internal/domain/entity"
)

// ProjectInput is the field set accepted by create and update.
type ProjectInput struct {
	Title       string `json:"title"`
	URL         string `json:"url" validate:"omitempty,url"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url|startswith=data:"`
}

// ProjectUsecase is the mutation gateway for the projects collection.
// Every operation checks the session first; a session that is locked or
// not admin makes the operation a silent no-op, reported through the
// applied flag with no error and no network call.
type ProjectUsecase interface {
	// Create writes a new record with views = 0 and server timestamps.
	// Without a supplied thumbnail a deterministic placeholder image is
	// generated from the title and embedded inline.
	Create(ctx context.Context, sess *entity.Session, input ProjectInput) (applied bool, err error)

	// Update overwrites the field set and refreshes updatedAt.
	Update(ctx context.Context, sess *entity.Session, id string, input ProjectInput) (applied bool, err error)

	// Delete removes the record. The client's confirmation dialog is the
	// explicit confirmation step; this call is the confirmed action.
	Delete(ctx context.Context, sess *entity.Session, id string) (applied bool, err error)

	// IncrementViews bumps the view counter by one, fire-and-forget: it
	// returns immediately, failures are logged and never surface, and
	// navigation to the external link is never blocked. Requires a
	// verified session only.
	IncrementViews(sess *entity.Session, id string)

	// UploadThumbnail stores the bytes in the blob bucket under a
	// generated unique key and returns the durable URL.
	UploadThumbnail(ctx context.Context, sess *entity.Session, filename, contentType string, r io.Reader) (url string, applied bool, err error)
}
