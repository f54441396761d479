package port

import "github.com/animo-meet/backend/internal/core/domain"

// Client is one connected channel as seen from the core. Send must never
// block; implementations queue and drop rather than stall a room.
type Client interface {
	ID() domain.ConnectionID
	Send(evt domain.Event) error
	Close() error
}
