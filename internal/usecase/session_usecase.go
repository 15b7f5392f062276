package usecase

import "context"

// SignInOutput reports the resolved identity and capability.
type SignInOutput struct {
	UID   string `json:"uid"`
	Admin bool   `json:"admin"`
}

// SessionUsecase resolves authentication events into the session's admin
// capability. Both operations are silent no-ops behind a locked gate,
// reported through the applied flag like the mutation gateway.
type SessionUsecase interface {
	// SignIn verifies the provider ID token and derives the admin flag:
	// identity present AND (no configured admin id OR identity matches).
	// A failed sign-in leaves the previous session state unchanged.
	SignIn(ctx context.Context, sessionID, idToken string) (out SignInOutput, applied bool, err error)

	// SignOut clears the identity and admin flag.
	SignOut(sessionID string) (applied bool, err error)
}
