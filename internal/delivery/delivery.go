// Package delivery defines the entry points that expose the usecases to clients.
package delivery

import "context"

// Delivery is a long-running transport such as the HTTP API.
type Delivery interface {
	// Serve blocks until the transport stops.
	Serve(ctx context.Context) error
}
