// Package service defines interfaces for external collaborators the
// application depends on but does not implement.
package service

import "context"

// Identity is the opaque descriptor delivered by the auth collaborator
// for a signed-in visitor.
type Identity struct {
	UID   string
	Email string
}

// IdentityVerifier turns an opaque authentication event (a provider ID
// token) into a verified identity. Implemented against the Firebase
// Admin SDK in infra.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}
