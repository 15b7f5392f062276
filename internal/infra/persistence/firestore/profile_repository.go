package firestore

import (
	"context"
	"log/slog"

	"folio/config"
	"folio/internal/domain/entity"
	"folio/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileRepository struct {
	client     *firestore.Client
	collection string
	docID      string
	logger     *slog.Logger
}

// NewProfileRepository creates the Firestore-backed profile repository.
func NewProfileRepository(client *firestore.Client, cfg *config.Config, logger *slog.Logger) repository.ProfileRepository {
	return &profileRepository{
		client:     client,
		collection: cfg.Firestore.ProfileCollection,
		docID:      cfg.Firestore.ProfileDocID,
		logger:     logger,
	}
}

func (r *profileRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(r.docID)
}

// Get reads the singleton. An absent document is not an error.
func (r *profileRepository) Get(ctx context.Context) (entity.Profile, bool, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return entity.Profile{}, false, nil
		}

		return entity.Profile{}, false, errors.Wrap(err, "get profile document")
	}

	var profile entity.Profile
	if err := snap.DataTo(&profile); err != nil {
		return entity.Profile{}, false, errors.Wrap(err, "decode profile document")
	}

	return profile, true, nil
}

// Save merge-writes the profile fields and refreshes updatedAt.
func (r *profileRepository) Save(ctx context.Context, profile entity.Profile) error {
	_, err := r.doc().Set(ctx, map[string]any{
		"name":      profile.Name,
		"tagline":   profile.Tagline,
		"about":     profile.About,
		"github":    profile.GitHub,
		"linkedin":  profile.LinkedIn,
		"instagram": profile.Instagram,
		"email":     profile.Email,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Wrap(err, "merge-write profile document")
	}

	return nil
}

// Watch subscribes to the singleton and delivers one observation per
// remote change, including the initial absent state.
func (r *profileRepository) Watch(ctx context.Context, send func(repository.ProfileSnapshot)) error {
	snapshots := r.doc().Snapshots(ctx)
	defer snapshots.Stop()

	for {
		snap, err := snapshots.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
				return nil
			}
			send(repository.ProfileSnapshot{Err: err})

			return errors.Wrap(err, "profile snapshot stream")
		}

		if !snap.Exists() {
			send(repository.ProfileSnapshot{Exists: false})

			continue
		}

		var profile entity.Profile
		if err := snap.DataTo(&profile); err != nil {
			send(repository.ProfileSnapshot{Err: err})

			return errors.Wrap(err, "decode profile document")
		}

		send(repository.ProfileSnapshot{Profile: profile, Exists: true})
	}
}
