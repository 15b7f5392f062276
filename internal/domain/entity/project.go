// Package entity contains the core business objects of the portfolio,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Project is a single work sample shown on the site. Records are owned by
// the document store; the service holds read-through snapshots of them.
type Project struct {
	// ID is the document id assigned by the store on creation, immutable.
	ID string `firestore:"-" json:"id"`

	Title       string `firestore:"title" json:"title"`
	URL         string `firestore:"url" json:"url"`
	Description string `firestore:"description" json:"description"`

	// Prompt is free text shown behind a disclosure control.
	Prompt string `firestore:"prompt" json:"prompt"`

	// Thumbnail is an externally hosted image URL. Empty means the view
	// falls back to a placeholder generated from the title.
	Thumbnail string `firestore:"thumbnail" json:"thumbnail"`

	// Views is mutated only by atomic increment and shown only to admins.
	Views int64 `firestore:"views" json:"views"`

	// CreatedAt is set once by the server and never mutated. UpdatedAt is
	// refreshed on every mutation and is the canonical list order key
	// (descending = newest first).
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// ProjectFields is the mutable field set accepted by create and update.
// Views and timestamps are never part of it.
type ProjectFields struct {
	Title       string
	URL         string
	Description string
	Prompt      string
	Thumbnail   string
}
