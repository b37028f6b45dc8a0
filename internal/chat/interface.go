package chat

import "context"

// Server is the guest-facing chat gateway. Guests connect over a
// WebSocket, send text or voice reviews and receive replies as the
// pipeline resolves them.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}
