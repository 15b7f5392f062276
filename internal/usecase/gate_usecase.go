// Package usecase contains the application-specific business rules.
package usecase

import "context"

// GateStatus is the visitor-facing gate state.
type GateStatus struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// GateUsecase drives the per-session human-verification gate. A session
// moves Locked -> Unlocked on a verified success callback or on the
// rescue poll detecting a captured token, and Unlocked -> Locked on
// expiry or a widget error.
type GateUsecase interface {
	// Status reports the current gate state and starts the rescue poll
	// for locked sessions on first sight.
	Status(ctx context.Context, sessionID string) GateStatus

	// Success handles the widget's success callback: the token is
	// verified with the challenge collaborator and the session unlocks.
	Success(ctx context.Context, sessionID, token string) error

	// CaptureToken records the widget's completion token as it appears
	// in its hidden response input, without unlocking. The rescue poll
	// picks it up when the success callback never fires.
	CaptureToken(sessionID, token string)

	// Expired relocks the session with an explanatory message.
	Expired(sessionID string)

	// Failed relocks the session after a widget error.
	Failed(sessionID string)
}
