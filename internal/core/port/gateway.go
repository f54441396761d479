package port

import "github.com/animo-meet/backend/internal/core/domain"

// EventGateway delivers events to live connections. Delivery is
// fire-and-forget: a closed or unknown target is reported as
// domain.ErrTargetUnreachable and never retried.
type EventGateway interface {
	SendTo(id domain.ConnectionID, evt domain.Event) error
	Broadcast(ids []domain.ConnectionID, evt domain.Event)
}
