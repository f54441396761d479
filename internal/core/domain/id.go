package domain

import (
	"github.com/google/uuid"
)

// ConnectionID identifies one live client channel. It is minted when the
// channel opens and is meaningless after the channel closes.
type ConnectionID string

// RoomID is the meeting code clients join with. Rooms are created on first
// join and destroyed when the last member leaves.
type RoomID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.New().String())
}

func (id ConnectionID) String() string {
	return string(id)
}

func (id RoomID) String() string {
	return string(id)
}
