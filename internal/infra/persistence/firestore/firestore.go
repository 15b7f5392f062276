// Package firestore implements the document-store repositories and their
// standing snapshot subscriptions.
package firestore

import (
	"context"

	"folio/config"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// ClientParams holds dependencies for the Firestore client, injected by Fx.
type ClientParams struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
}

// NewClient creates the Firestore client, closed on shutdown.
func NewClient(params ClientParams) (*firestore.Client, error) {
	cfg := params.Config
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, errors.New("firebase project is not configured")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	client, err := firestore.NewClient(params.Ctx, cfg.Firebase.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create Firestore client")
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
