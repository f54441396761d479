package service

import (
	"sync"

	"github.com/animo-meet/backend/internal/core/domain"
)

// roomGuard hands out one exclusive lock per room id so that a room's
// mutation and the broadcast it produces form a single serial step. Entries
// are refcounted and dropped when unused, so dead rooms don't accumulate
// locks.
type roomGuard struct {
	mu    sync.Mutex
	locks map[domain.RoomID]*guardEntry
}

type guardEntry struct {
	mu   sync.Mutex
	refs int
}

func newRoomGuard() *roomGuard {
	return &roomGuard{locks: make(map[domain.RoomID]*guardEntry)}
}

// lock acquires the room's lock and returns its release func.
func (g *roomGuard) lock(id domain.RoomID) func() {
	g.mu.Lock()
	e, ok := g.locks[id]
	if !ok {
		e = &guardEntry{}
		g.locks[id] = e
	}
	e.refs++
	g.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		g.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(g.locks, id)
		}
		g.mu.Unlock()
	}
}
