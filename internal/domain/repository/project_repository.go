// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"folio/internal/domain/entity"
)

// ErrProjectNotFound is a domain-specific error returned when a project is not found.
var ErrProjectNotFound = errors.New("project not found")

// ProjectsSnapshot is one full materialization of the remote collection,
// already in the store's canonical order (updatedAt descending). Err is
// set instead of Projects when the standing subscription reported a
// failure; the subscription itself is not retried here.
type ProjectsSnapshot struct {
	Projects []entity.Project
	Err      error
}

// ProjectRepository defines the operations for project persistence.
type ProjectRepository interface {
	// Create writes a new record with views = 0 and server-assigned
	// timestamps, returning the store-assigned id.
	Create(ctx context.Context, fields entity.ProjectFields) (string, error)

	// Update overwrites the mutable field set and refreshes updatedAt.
	// createdAt and views are untouched.
	Update(ctx context.Context, id string, fields entity.ProjectFields) error

	// Delete removes the record. Irreversible, no soft-delete.
	Delete(ctx context.Context, id string) error

	// IncrementViews atomically increments views by one.
	IncrementViews(ctx context.Context, id string) error

	// Watch opens a standing subscription on the ordered collection and
	// delivers one snapshot per remote change until ctx is cancelled.
	Watch(ctx context.Context, send func(ProjectsSnapshot)) error
}
