package entity

import "time"

// Session is the process-local, ephemeral state of one visitor. It is
// never synchronized anywhere; a new cookie means a fresh locked,
// signed-out session.
type Session struct {
	ID string

	// Verified flips to true when the human-verification widget reports
	// success or the rescue poll detects a completion token. It resets
	// to false on expiry or widget error.
	Verified bool

	// PendingToken is the widget's completion token as captured from its
	// conventionally-named hidden input, recorded before (or instead of)
	// the success callback. The rescue poll reads it.
	PendingToken string

	// GateMsg explains a relock to the visitor; empty while unlocked.
	GateMsg string

	// UID is the signed-in identity, empty when signed out.
	UID string

	// Admin derives from UID and the configured admin identity. With no
	// configured admin every signed-in identity is admin.
	Admin bool

	CreatedAt time.Time
	LastSeen  time.Time
}

// CanMutate reports whether mutation-capable actions are allowed. While
// false, create/update/delete and profile saves are silent no-ops.
// View-count increments need only Verified.
func (s *Session) CanMutate() bool {
	return s != nil && s.Verified && s.Admin
}
