package service

import (
	"encoding/json"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/animo-meet/backend/internal/core/port"
	"github.com/rs/zerolog/log"
)

// SignalService forwards opaque negotiation payloads between two peers.
// There is deliberately no room check: peers negotiate directly and the
// transport gives no delivery guarantee anyway.
type SignalService struct {
	gateway port.EventGateway
}

func NewSignalService(gateway port.EventGateway) *SignalService {
	return &SignalService{gateway: gateway}
}

// Relay sends payload to the target, tagged with the sender's handle. A
// vanished target is dropped silently; the sender is never told.
func (s *SignalService) Relay(from, to domain.ConnectionID, payload json.RawMessage) {
	err := s.gateway.SendTo(to, domain.SignalEvent{From: from, Payload: payload})
	if err != nil {
		log.Debug().
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("signal target unreachable, dropped")
	}
}
