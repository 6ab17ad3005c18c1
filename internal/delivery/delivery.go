// Package delivery defines the contract shared by every inbound transport.
package delivery

import "context"

// Delivery is a transport that serves requests until it is shut down.
type Delivery interface {
	Serve(ctx context.Context) error
}
