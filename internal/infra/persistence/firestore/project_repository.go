package firestore

import (
	"context"
	"log/slog"

	"folio/config"
	"folio/internal/domain/entity"
	"folio/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type projectRepository struct {
	client     *firestore.Client
	collection string
	logger     *slog.Logger
}

// NewProjectRepository creates the Firestore-backed project repository.
func NewProjectRepository(client *firestore.Client, cfg *config.Config, logger *slog.Logger) repository.ProjectRepository {
	return &projectRepository{
		client:     client,
		collection: cfg.Firestore.ProjectsCollection,
		logger:     logger,
	}
}

// Create writes a new record. views starts at zero and both timestamps are
// assigned by the server, so createdAt == updatedAt on a fresh record.
func (r *projectRepository) Create(ctx context.Context, fields entity.ProjectFields) (string, error) {
	doc := r.client.Collection(r.collection).NewDoc()

	_, err := doc.Create(ctx, map[string]any{
		"title":       fields.Title,
		"url":         fields.URL,
		"description": fields.Description,
		"prompt":      fields.Prompt,
		"thumbnail":   fields.Thumbnail,
		"views":       0,
		"createdAt":   firestore.ServerTimestamp,
		"updatedAt":   firestore.ServerTimestamp,
	})
	if err != nil {
		return "", errors.Wrap(err, "create project document")
	}

	return doc.ID, nil
}

// Update overwrites the mutable field set and refreshes updatedAt.
func (r *projectRepository) Update(ctx context.Context, id string, fields entity.ProjectFields) error {
	doc := r.client.Collection(r.collection).Doc(id)

	_, err := doc.Update(ctx, []firestore.Update{
		{Path: "title", Value: fields.Title},
		{Path: "url", Value: fields.URL},
		{Path: "description", Value: fields.Description},
		{Path: "prompt", Value: fields.Prompt},
		{Path: "thumbnail", Value: fields.Thumbnail},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrProjectNotFound
		}

		return errors.Wrap(err, "update project document")
	}

	return nil
}

// Delete removes the record.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Wrap(err, "delete project document")
	}

	return nil
}

// IncrementViews relies on the store's atomic increment so concurrent
// clicks never lose updates.
func (r *projectRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrProjectNotFound
		}

		return errors.Wrap(err, "increment project views")
	}

	return nil
}

// Watch subscribes to the collection ordered by updatedAt descending and
// delivers one full materialization per remote change. The SDK owns
// reconnection; a terminal stream error is delivered once in place of the
// list and ends the watch.
func (r *projectRepository) Watch(ctx context.Context, send func(repository.ProjectsSnapshot)) error {
	query := r.client.Collection(r.collection).OrderBy("updatedAt", firestore.Desc)

	snapshots := query.Snapshots(ctx)
	defer snapshots.Stop()

	for {
		snap, err := snapshots.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
				return nil
			}
			send(repository.ProjectsSnapshot{Err: err})

			return errors.Wrap(err, "projects snapshot stream")
		}

		projects, err := collectProjects(snap.Documents)
		if err != nil {
			send(repository.ProjectsSnapshot{Err: err})

			return err
		}

		send(repository.ProjectsSnapshot{Projects: projects})
	}
}

func collectProjects(docs *firestore.DocumentIterator) ([]entity.Project, error) {
	projects := make([]entity.Project, 0, 16)

	for {
		doc, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			return projects, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate project documents")
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return nil, errors.Wrapf(err, "decode project document %s", doc.Ref.ID)
		}
		project.ID = doc.Ref.ID

		projects = append(projects, project)
	}
}
