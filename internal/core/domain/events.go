package domain

import (
	"encoding/json"
	"time"
)

// Event is anything the server pushes to a client channel.
type Event interface {
	EventType() string
}

// Connected tells a freshly opened channel which handle the server minted
// for it, so the client can recognise itself in rosters.
type Connected struct {
	Handle ConnectionID `json:"handle"`
}

func (Connected) EventType() string { return "connected" }

// MemberJoined carries the post-join roster so every recipient, old and new,
// ends up with the same view.
type MemberJoined struct {
	Handle       ConnectionID            `json:"handle"`
	Members      []ConnectionID          `json:"members"`
	Username     string                  `json:"username"`
	DisplayName  string                  `json:"display_name"`
	Usernames    map[ConnectionID]string `json:"usernames"`
	DisplayNames map[ConnectionID]string `json:"display_names"`
	Media        MediaState              `json:"media"`
}

func (MemberJoined) EventType() string { return "member-joined" }

// ChatEvent is used both for live fan-out and for history replay.
type ChatEvent struct {
	SenderName string       `json:"sender_name"`
	Payload    string       `json:"payload"`
	Origin     ConnectionID `json:"origin_handle"`
	SentAt     time.Time    `json:"sent_at"`
}

func (ChatEvent) EventType() string { return "chat-message" }

// SignalEvent relays an opaque SDP/ICE blob to a single peer, tagged with
// who it came from. The payload is never inspected.
type SignalEvent struct {
	From    ConnectionID    `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

func (SignalEvent) EventType() string { return "signal" }

type MediaUpdate struct {
	Handle ConnectionID `json:"handle"`
	Media  MediaState   `json:"media"`
}

func (MediaUpdate) EventType() string { return "user-media-update" }

type MemberLeft struct {
	Handle      ConnectionID `json:"handle"`
	DisplayName string       `json:"display_name"`
}

func (MemberLeft) EventType() string { return "member-left" }
