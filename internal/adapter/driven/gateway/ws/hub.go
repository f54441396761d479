package ws

import (
	"sync"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/animo-meet/backend/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Hub is the registry of live connections and the single place events leave
// through. It implements port.EventGateway.
type Hub struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]port.Client
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[domain.ConnectionID]port.Client),
	}
}

// Register records a live connection. Re-registering the same handle is a
// no-op.
func (h *Hub) Register(c port.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c.ID()]; ok {
		return
	}
	h.conns[c.ID()] = c
	log.Info().Str("client_id", c.ID().String()).Msg("Client registered")
}

// Unregister drops and closes the connection. Safe to call repeatedly.
func (h *Hub) Unregister(id domain.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[id]
	if !ok {
		return
	}
	delete(h.conns, id)
	c.Close()
	log.Info().Str("client_id", id.String()).Msg("Client unregistered")
}

// SendTo queues evt for one connection. Unknown targets report
// domain.ErrTargetUnreachable; nothing is retried.
func (h *Hub) SendTo(id domain.ConnectionID, evt domain.Event) error {
	h.mu.RLock()
	c, ok := h.conns[id]
	h.mu.RUnlock()

	if !ok {
		return domain.ErrTargetUnreachable
	}
	if err := c.Send(evt); err != nil {
		log.Debug().Err(err).Str("client_id", id.String()).Str("event", evt.EventType()).Msg("send failed, dropping")
		return domain.ErrTargetUnreachable
	}
	return nil
}

// Broadcast queues evt for each listed connection. Dead targets are skipped
// silently.
func (h *Hub) Broadcast(ids []domain.ConnectionID, evt domain.Event) {
	for _, id := range ids {
		_ = h.SendTo(id, evt)
	}
}

// CloseAll disconnects every client; used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.conns {
		c.Close()
		delete(h.conns, id)
	}
}
