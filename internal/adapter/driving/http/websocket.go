package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errClientClosed = errors.New("client channel closed")

// wsClient implements port.Client over one gorilla connection. Events are
// queued on a buffered channel and written by a single pump goroutine, which
// is what gives each target its FIFO ordering.
type wsClient struct {
	id   domain.ConnectionID
	conn *websocket.Conn
	send chan domain.Event
	done chan struct{}
	once sync.Once
}

func newWSClient(id domain.ConnectionID, conn *websocket.Conn, buffer int) *wsClient {
	return &wsClient{
		id:   id,
		conn: conn,
		send: make(chan domain.Event, buffer),
		done: make(chan struct{}),
	}
}

func (c *wsClient) ID() domain.ConnectionID {
	return c.id
}

// Send queues without blocking. A full queue drops the event; only a closed
// client is an error.
func (c *wsClient) Send(evt domain.Event) error {
	select {
	case <-c.done:
		return errClientClosed
	default:
	}

	select {
	case c.send <- evt:
		return nil
	case <-c.done:
		return errClientClosed
	default:
		log.Debug().Str("client_id", c.id.String()).Str("event", evt.EventType()).Msg("send queue full, event dropped")
		return nil
	}
}

func (c *wsClient) Close() error {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
	return nil
}

type outboundEnvelope struct {
	Type string       `json:"type"`
	Data domain.Event `json:"data"`
}

func (c *wsClient) writePump() {
	for {
		select {
		case evt := <-c.send:
			if err := c.conn.WriteJSON(outboundEnvelope{Type: evt.EventType(), Data: evt}); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinPayload struct {
	RoomID         string `json:"room_id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	AudioEnabled   bool   `json:"audio_enabled"`
	AudioAvailable bool   `json:"audio_available"`
	VideoEnabled   bool   `json:"video_enabled"`
	VideoAvailable bool   `json:"video_available"`
}

func (p joinPayload) media() domain.MediaState {
	return domain.MediaState{
		AudioEnabled:   p.AudioEnabled,
		AudioAvailable: p.AudioAvailable,
		VideoEnabled:   p.VideoEnabled,
		VideoAvailable: p.VideoAvailable,
	}
}

type signalPayload struct {
	To      string          `json:"to"`
	Payload json.RawMessage `json:"payload"`
}

type chatPayload struct {
	SenderName string `json:"sender_name"`
	Payload    string `json:"payload"`
	SentAt     int64  `json:"sent_at"`
}

type togglePayload struct {
	RoomID         string `json:"room_id"`
	AudioEnabled   bool   `json:"audio_enabled"`
	AudioAvailable bool   `json:"audio_available"`
	VideoEnabled   bool   `json:"video_enabled"`
	VideoAvailable bool   `json:"video_available"`
}

func (p togglePayload) media() domain.MediaState {
	return domain.MediaState{
		AudioEnabled:   p.AudioEnabled,
		AudioAvailable: p.AudioAvailable,
		VideoEnabled:   p.VideoEnabled,
		VideoAvailable: p.VideoAvailable,
	}
}

// ServeWS upgrades the connection, mints a handle and runs the inbound
// event loop until the channel closes.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := newWSClient(domain.NewConnectionID(), conn, h.cfg.ClientSendBuffer)

	l := log.With().Str("client_id", client.id.String()).Logger()
	l.Info().Msg("New client connected")

	h.Hub.Register(client)
	go client.writePump()

	// Tell the client its handle so it can find itself in rosters.
	_ = client.Send(domain.Connected{Handle: client.id})

	defer func() {
		l.Info().Msg("Client disconnected")
		h.Rooms.Leave(client.id)
		h.Hub.Unregister(client.id)
	}()

	for {
		var env inboundEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}
		h.dispatch(l, client.id, env)
	}
}

// dispatch handles a single inbound event. A failure here is contained to
// this event: it is logged and the loop keeps going.
func (h *Handler) dispatch(l zerolog.Logger, id domain.ConnectionID, env inboundEnvelope) {
	defer func() {
		if rec := recover(); rec != nil {
			l.Error().Interface("panic", rec).Str("event", env.Type).Msg("event handler panicked")
		}
	}()

	switch env.Type {
	case "join-call":
		var p joinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			l.Error().Err(err).Msg("Invalid join payload")
			return
		}
		if err := h.Rooms.Join(id, domain.RoomID(p.RoomID), p.Username, p.DisplayName, p.media()); err != nil {
			// The channel has no error-return path; the rejection is
			// recorded here and the client stays in its current room.
			l.Warn().Err(err).Str("room", p.RoomID).Msg("join rejected")
		}

	case "signal":
		var p signalPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			l.Error().Err(err).Msg("Invalid signal payload")
			return
		}
		h.Signals.Relay(id, domain.ConnectionID(p.To), p.Payload)

	case "chat-message":
		var p chatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			l.Error().Err(err).Msg("Invalid chat payload")
			return
		}
		at := time.Now()
		if p.SentAt > 0 {
			at = time.UnixMilli(p.SentAt)
		}
		h.Rooms.SendChat(id, p.SenderName, p.Payload, at)

	case "toggle-media":
		var p togglePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			l.Error().Err(err).Msg("Invalid toggle payload")
			return
		}
		h.Rooms.UpdateMedia(id, p.media())

	case "leave-call":
		h.Rooms.Leave(id)

	default:
		l.Debug().Str("event", env.Type).Msg("unknown event type, ignored")
	}
}
