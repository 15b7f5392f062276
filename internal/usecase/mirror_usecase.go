package usecase

import "folio/internal/domain/entity"

// Snapshot is the mirror's current local materialization of the remote
// data. Version increases with every remote notification, so renders can
// tell whether they are derived from the latest push.
type Snapshot struct {
	Version int64 `json:"version"`

	Projects    []entity.Project `json:"projects"`
	ProjectsErr string           `json:"projectsErr,omitempty"`

	Profile       entity.Profile `json:"profile"`
	ProfileExists bool           `json:"profileExists"`
	ProfileErr    string         `json:"profileErr,omitempty"`
}

// MirrorUsecase keeps local snapshots continuously synchronized with the
// remote collection and singleton through standing subscriptions.
type MirrorUsecase interface {
	// Snapshot returns the most recently received materialization.
	Snapshot() Snapshot

	// Subscribe registers for change notifications. The returned channel
	// receives one signal per version bump (coalesced under load);
	// cancel unregisters it.
	Subscribe() (<-chan struct{}, func())
}
