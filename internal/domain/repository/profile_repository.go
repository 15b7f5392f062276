package repository

import (
	"context"

	"folio/internal/domain/entity"
)

// ProfileSnapshot is one observation of the singleton document. Exists is
// false until the document has been created; Err is set when the standing
// subscription reported a failure.
type ProfileSnapshot struct {
	Profile entity.Profile
	Exists  bool
	Err     error
}

// ProfileRepository defines the operations for the profile singleton,
// identified by a fixed well-known document id.
type ProfileRepository interface {
	// Get reads the singleton. Exists reports whether it has been
	// created yet; an absent document is not an error.
	Get(ctx context.Context) (entity.Profile, bool, error)

	// Save merge-writes the profile fields and refreshes updatedAt.
	// Merge semantics keep partial updates from erasing untouched fields.
	Save(ctx context.Context, profile entity.Profile) error

	// Watch opens a standing subscription on the singleton and delivers
	// one snapshot per remote change until ctx is cancelled.
	Watch(ctx context.Context, send func(ProfileSnapshot)) error
}
