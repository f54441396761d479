package port

import (
	"time"

	"github.com/animo-meet/backend/internal/core/domain"
)

// RoomDirectory owns all per-room state: ordered membership, presence
// metadata and the chat log. Every method is atomic; a room exists exactly
// while it has at least one member.
type RoomDirectory interface {
	// Join binds handle to roomID, creating the room if needed, and returns
	// the post-join snapshot. Joining the room the handle is already in
	// refreshes its metadata; joining a different one fails with
	// domain.ErrAlreadyInRoom.
	Join(roomID domain.RoomID, handle domain.ConnectionID, username, displayName string, media domain.MediaState) (domain.RoomSnapshot, error)

	// Leave unbinds handle from its room, destroying the room and its chat
	// log when the last member goes. domain.ErrNotInRoom if unbound; safe to
	// call repeatedly.
	Leave(handle domain.ConnectionID) (domain.Departure, error)

	// UpdateMedia replaces the stored flags and reports the room plus its
	// current members. domain.ErrNotInRoom if unbound.
	UpdateMedia(handle domain.ConnectionID, media domain.MediaState) (domain.RoomID, []domain.ConnectionID, error)

	// AppendChat records a message in the log of handle's room and reports
	// the room plus its current members. domain.ErrNotInRoom if unbound.
	AppendChat(handle domain.ConnectionID, senderName, payload string, at time.Time) (domain.RoomID, []domain.ConnectionID, error)

	// Snapshot returns the room's roster, or an empty snapshot if the room
	// does not exist.
	Snapshot(roomID domain.RoomID) domain.RoomSnapshot

	// ReplayChat returns a fresh copy of the room's chat log in insertion
	// order; empty if the room has no history or does not exist.
	ReplayChat(roomID domain.RoomID) []domain.ChatMessage

	// RoomOf reports which room handle is currently bound to, if any.
	RoomOf(handle domain.ConnectionID) (domain.RoomID, bool)
}
