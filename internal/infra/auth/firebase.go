// Package auth implements the identity collaborator against the Firebase
// Admin SDK. The service never handles credentials itself; the browser
// signs in with the provider popup and hands over an ID token, which is
// verified here.
package auth

import (
	"context"
	"log/slog"

	"folio/config"
	"folio/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type firebaseVerifier struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewIdentityVerifier creates an IdentityVerifier backed by Firebase Auth.
func NewIdentityVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, errors.New("firebase project is not configured")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get Auth client")
	}

	return &firebaseVerifier{client: client, logger: logger}, nil
}

// Verify validates the provider ID token and extracts the identity.
func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (service.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return service.Identity{}, errors.Wrap(err, "verify ID token")
	}

	identity := service.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}
