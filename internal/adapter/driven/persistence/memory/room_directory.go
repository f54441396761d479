package memory

import (
	"sync"
	"time"

	"github.com/animo-meet/backend/internal/core/domain"
)

// room holds everything that lives and dies with one meeting code. The chat
// log sits inside so the last leave destroys both in the same step.
type room struct {
	members      []domain.ConnectionID
	usernames    map[domain.ConnectionID]string
	displayNames map[domain.ConnectionID]string
	media        map[domain.ConnectionID]domain.MediaState
	chat         []domain.ChatMessage
}

func newRoom() *room {
	return &room{
		usernames:    make(map[domain.ConnectionID]string),
		displayNames: make(map[domain.ConnectionID]string),
		media:        make(map[domain.ConnectionID]domain.MediaState),
	}
}

func (r *room) has(handle domain.ConnectionID) bool {
	for _, m := range r.members {
		if m == handle {
			return true
		}
	}
	return false
}

// RoomDirectory implements port.RoomDirectory on plain in-process maps.
// One mutex covers the rooms map and the handle index, which keeps room
// creation, last-member teardown and the no-orphan-metadata invariant
// trivially atomic. Critical sections are map and slice work only; nothing
// here calls out.
type RoomDirectory struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*room
	index map[domain.ConnectionID]domain.RoomID
}

func NewRoomDirectory() *RoomDirectory {
	return &RoomDirectory{
		rooms: make(map[domain.RoomID]*room),
		index: make(map[domain.ConnectionID]domain.RoomID),
	}
}

func (d *RoomDirectory) Join(roomID domain.RoomID, handle domain.ConnectionID, username, displayName string, media domain.MediaState) (domain.RoomSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if bound, ok := d.index[handle]; ok && bound != roomID {
		return domain.RoomSnapshot{}, domain.ErrAlreadyInRoom
	}

	r, ok := d.rooms[roomID]
	if !ok {
		r = newRoom()
		d.rooms[roomID] = r
	}

	// Duplicate join to the same room keeps the original join position and
	// just refreshes the metadata.
	if !r.has(handle) {
		r.members = append(r.members, handle)
		d.index[handle] = roomID
	}
	r.usernames[handle] = username
	r.displayNames[handle] = displayName
	r.media[handle] = media

	return snapshotLocked(roomID, r), nil
}

func (d *RoomDirectory) Leave(handle domain.ConnectionID) (domain.Departure, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	roomID, ok := d.index[handle]
	if !ok {
		return domain.Departure{}, domain.ErrNotInRoom
	}
	r := d.rooms[roomID]

	dep := domain.Departure{
		RoomID:      roomID,
		DisplayName: r.displayNames[handle],
	}

	for i, m := range r.members {
		if m == handle {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	delete(r.usernames, handle)
	delete(r.displayNames, handle)
	delete(r.media, handle)
	delete(d.index, handle)

	if len(r.members) == 0 {
		delete(d.rooms, roomID)
		dep.RoomClosed = true
		return dep, nil
	}

	dep.Remaining = append([]domain.ConnectionID(nil), r.members...)
	return dep, nil
}

func (d *RoomDirectory) UpdateMedia(handle domain.ConnectionID, media domain.MediaState) (domain.RoomID, []domain.ConnectionID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	roomID, ok := d.index[handle]
	if !ok {
		return "", nil, domain.ErrNotInRoom
	}
	r := d.rooms[roomID]
	r.media[handle] = media
	return roomID, append([]domain.ConnectionID(nil), r.members...), nil
}

func (d *RoomDirectory) AppendChat(handle domain.ConnectionID, senderName, payload string, at time.Time) (domain.RoomID, []domain.ConnectionID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	roomID, ok := d.index[handle]
	if !ok {
		return "", nil, domain.ErrNotInRoom
	}
	r := d.rooms[roomID]
	r.chat = append(r.chat, domain.ChatMessage{
		SenderName: senderName,
		Payload:    payload,
		Origin:     handle,
		SentAt:     at,
	})
	return roomID, append([]domain.ConnectionID(nil), r.members...), nil
}

func (d *RoomDirectory) Snapshot(roomID domain.RoomID) domain.RoomSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.rooms[roomID]
	if !ok {
		return domain.RoomSnapshot{
			RoomID:       roomID,
			Usernames:    map[domain.ConnectionID]string{},
			DisplayNames: map[domain.ConnectionID]string{},
			Media:        map[domain.ConnectionID]domain.MediaState{},
		}
	}
	return snapshotLocked(roomID, r)
}

func (d *RoomDirectory) ReplayChat(roomID domain.RoomID) []domain.ChatMessage {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.rooms[roomID]
	if !ok || len(r.chat) == 0 {
		return nil
	}
	return append([]domain.ChatMessage(nil), r.chat...)
}

func (d *RoomDirectory) RoomOf(handle domain.ConnectionID) (domain.RoomID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	roomID, ok := d.index[handle]
	return roomID, ok
}

// snapshotLocked copies the roster; callers hold d.mu.
func snapshotLocked(roomID domain.RoomID, r *room) domain.RoomSnapshot {
	snap := domain.RoomSnapshot{
		RoomID:       roomID,
		Members:      append([]domain.ConnectionID(nil), r.members...),
		Usernames:    make(map[domain.ConnectionID]string, len(r.usernames)),
		DisplayNames: make(map[domain.ConnectionID]string, len(r.displayNames)),
		Media:        make(map[domain.ConnectionID]domain.MediaState, len(r.media)),
	}
	for k, v := range r.usernames {
		snap.Usernames[k] = v
	}
	for k, v := range r.displayNames {
		snap.DisplayNames[k] = v
	}
	for k, v := range r.media {
		snap.Media[k] = v
	}
	return snap
}
