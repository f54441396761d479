package service

import (
	"time"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/animo-meet/backend/internal/core/port"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// UnknownDisplayName is announced when a leaving member's display name can
// no longer be resolved.
const UnknownDisplayName = "unknown user"

// RoomService runs presence: joins, leaves, media toggles and chat fan-out.
// Every operation takes the room's guard for the full mutate-and-emit
// sequence, so members observe one room's events in production order.
// Gateway sends never block, which is what makes emitting under the guard
// safe.
type RoomService struct {
	directory port.RoomDirectory
	gateway   port.EventGateway
	guard     *roomGuard
}

func NewRoomService(directory port.RoomDirectory, gateway port.EventGateway) *RoomService {
	return &RoomService{
		directory: directory,
		gateway:   gateway,
		guard:     newRoomGuard(),
	}
}

// Join binds the handle to the room and announces the new roster to every
// member, the joiner included, then replays buffered chat to the joiner
// only. A duplicate join to the same room refreshes metadata and
// re-broadcasts.
func (s *RoomService) Join(handle domain.ConnectionID, roomID domain.RoomID, username, displayName string, media domain.MediaState) error {
	unlock := s.guard.lock(roomID)
	defer unlock()

	snap, err := s.directory.Join(roomID, handle, username, displayName, media)
	if err != nil {
		return err
	}

	s.gateway.Broadcast(snap.Members, domain.MemberJoined{
		Handle:       handle,
		Members:      snap.Members,
		Username:     username,
		DisplayName:  displayName,
		Usernames:    snap.Usernames,
		DisplayNames: snap.DisplayNames,
		Media:        media,
	})

	for _, msg := range s.directory.ReplayChat(roomID) {
		if err := s.gateway.SendTo(handle, chatEvent(msg)); err != nil {
			// Joiner already gone; nothing left to replay to.
			break
		}
	}
	return nil
}

// Leave unbinds the handle and tells the remaining members. Unbound handles
// are a silent no-op, which also makes the leave/disconnect race harmless:
// whichever path runs second finds nothing to do.
func (s *RoomService) Leave(handle domain.ConnectionID) {
	roomID, ok := s.directory.RoomOf(handle)
	if !ok {
		log.Debug().Str("handle", handle.String()).Msg("leave for unbound handle, ignoring")
		return
	}

	unlock := s.guard.lock(roomID)
	defer unlock()

	dep, err := s.directory.Leave(handle)
	if err != nil {
		// Lost the race with a concurrent cleanup of the same handle.
		return
	}

	if dep.RoomClosed {
		log.Info().Str("room", dep.RoomID.String()).Msg("last member left, room destroyed")
		return
	}

	displayName := dep.DisplayName
	if displayName == "" {
		displayName = UnknownDisplayName
	}
	s.gateway.Broadcast(dep.Remaining, domain.MemberLeft{
		Handle:      handle,
		DisplayName: displayName,
	})
}

// UpdateMedia stores the new flags and notifies everyone but the toggler.
func (s *RoomService) UpdateMedia(handle domain.ConnectionID, media domain.MediaState) {
	roomID, ok := s.directory.RoomOf(handle)
	if !ok {
		log.Debug().Str("handle", handle.String()).Msg("media update for unbound handle, ignoring")
		return
	}

	unlock := s.guard.lock(roomID)
	defer unlock()

	_, members, err := s.directory.UpdateMedia(handle, media)
	if err != nil {
		return
	}

	others := lo.Filter(members, func(id domain.ConnectionID, _ int) bool {
		return id != handle
	})
	s.gateway.Broadcast(others, domain.MediaUpdate{Handle: handle, Media: media})
}

// SendChat appends the message to the room's history and fans it out to all
// members, sender included.
func (s *RoomService) SendChat(handle domain.ConnectionID, senderName, payload string, at time.Time) {
	roomID, ok := s.directory.RoomOf(handle)
	if !ok {
		log.Debug().Str("handle", handle.String()).Msg("chat from unbound handle, ignoring")
		return
	}

	unlock := s.guard.lock(roomID)
	defer unlock()

	_, members, err := s.directory.AppendChat(handle, senderName, payload, at)
	if err != nil {
		return
	}

	s.gateway.Broadcast(members, domain.ChatEvent{
		SenderName: senderName,
		Payload:    payload,
		Origin:     handle,
		SentAt:     at,
	})
}

func chatEvent(msg domain.ChatMessage) domain.ChatEvent {
	return domain.ChatEvent{
		SenderName: msg.SenderName,
		Payload:    msg.Payload,
		Origin:     msg.Origin,
		SentAt:     msg.SentAt,
	}
}
