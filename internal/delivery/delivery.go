// Package delivery defines the contract every transport server fulfils.
package delivery

import "context"

// Delivery is one serving surface (HTTP today). Serve blocks until the
// server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
