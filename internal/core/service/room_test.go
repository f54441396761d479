package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/animo-meet/backend/internal/adapter/driven/persistence/memory"
	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/stretchr/testify/require"
)

// fakeGateway records every event per target, in delivery order.
type fakeGateway struct {
	mu   sync.Mutex
	sent map[domain.ConnectionID][]domain.Event
	dead map[domain.ConnectionID]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sent: make(map[domain.ConnectionID][]domain.Event),
		dead: make(map[domain.ConnectionID]bool),
	}
}

func (g *fakeGateway) SendTo(id domain.ConnectionID, evt domain.Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dead[id] {
		return domain.ErrTargetUnreachable
	}
	g.sent[id] = append(g.sent[id], evt)
	return nil
}

func (g *fakeGateway) Broadcast(ids []domain.ConnectionID, evt domain.Event) {
	for _, id := range ids {
		_ = g.SendTo(id, evt)
	}
}

func (g *fakeGateway) eventsFor(id domain.ConnectionID) []domain.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Event(nil), g.sent[id]...)
}

func (g *fakeGateway) markDead(id domain.ConnectionID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dead[id] = true
}

var media = domain.MediaState{AudioEnabled: true, AudioAvailable: true, VideoEnabled: true, VideoAvailable: true}

func newRoomServiceForTest() (*RoomService, *fakeGateway) {
	gw := newFakeGateway()
	return NewRoomService(memory.NewRoomDirectory(), gw), gw
}

func TestJoin_BroadcastsConsistentRosterToEveryone(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "ABC123", "alice", "Alice", media))
	require.NoError(t, s.Join("h2", "ABC123", "bob", "Bob", media))

	h1Events := gw.eventsFor("h1")
	require.Len(t, h1Events, 2)
	first, ok := h1Events[0].(domain.MemberJoined)
	require.True(t, ok)
	require.Equal(t, []domain.ConnectionID{"h1"}, first.Members)
	second, ok := h1Events[1].(domain.MemberJoined)
	require.True(t, ok)
	require.Equal(t, []domain.ConnectionID{"h1", "h2"}, second.Members)

	h2Events := gw.eventsFor("h2")
	require.Len(t, h2Events, 1)
	joined, ok := h2Events[0].(domain.MemberJoined)
	require.True(t, ok)
	require.Equal(t, domain.ConnectionID("h2"), joined.Handle)
	require.Equal(t, []domain.ConnectionID{"h1", "h2"}, joined.Members)
	require.Equal(t, "bob", joined.Username)
	require.Equal(t, "Alice", joined.DisplayNames["h1"])
	require.Equal(t, "alice", joined.Usernames["h1"])
	require.Equal(t, media, joined.Media)
}

func TestJoin_ReplaysHistoryToNewMemberOnly(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "Alice", media))
	for i := 1; i <= 3; i++ {
		s.SendChat("h1", "Alice", fmt.Sprintf("m%d", i), time.Now())
	}

	require.NoError(t, s.Join("h2", "room", "bob", "Bob", media))

	h2Events := gw.eventsFor("h2")
	require.Len(t, h2Events, 4) // member-joined + three replayed messages
	for i, evt := range h2Events[1:] {
		chat, ok := evt.(domain.ChatEvent)
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("m%d", i+1), chat.Payload)
		require.Equal(t, "Alice", chat.SenderName)
		require.Equal(t, domain.ConnectionID("h1"), chat.Origin)
	}

	// h1 saw its own join, its own chats, then h2's join. No replay.
	h1Events := gw.eventsFor("h1")
	require.Len(t, h1Events, 5)
	_, ok := h1Events[4].(domain.MemberJoined)
	require.True(t, ok)
}

func TestJoin_WhileBoundElsewhereIsRejected(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room-a", "alice", "Alice", media))
	err := s.Join("h1", "room-b", "alice", "Alice", media)
	require.ErrorIs(t, err, domain.ErrAlreadyInRoom)

	// Only the original join event was emitted.
	require.Len(t, gw.eventsFor("h1"), 1)
}

func TestJoin_DuplicateSameRoomRebroadcasts(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "Alice", media))
	require.NoError(t, s.Join("h1", "room", "alice", "Alice B.", media))

	events := gw.eventsFor("h1")
	require.Len(t, events, 2)
	refreshed, ok := events[1].(domain.MemberJoined)
	require.True(t, ok)
	require.Equal(t, []domain.ConnectionID{"h1"}, refreshed.Members)
	require.Equal(t, "Alice B.", refreshed.DisplayName)
}

func TestLeave_NotifiesRemainingMembersOnce(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "Alice", media))
	require.NoError(t, s.Join("h2", "room", "bob", "Bob", media))

	s.Leave("h1")
	s.Leave("h1") // leave/disconnect race: second call is a no-op

	var lefts int
	for _, evt := range gw.eventsFor("h2") {
		if left, ok := evt.(domain.MemberLeft); ok {
			lefts++
			require.Equal(t, domain.ConnectionID("h1"), left.Handle)
			require.Equal(t, "Alice", left.DisplayName)
		}
	}
	require.Equal(t, 1, lefts)
}

func TestLeave_FallsBackToUnknownDisplayName(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "", media))
	require.NoError(t, s.Join("h2", "room", "bob", "Bob", media))

	s.Leave("h1")

	events := gw.eventsFor("h2")
	left, ok := events[len(events)-1].(domain.MemberLeft)
	require.True(t, ok)
	require.Equal(t, UnknownDisplayName, left.DisplayName)
}

func TestLeave_LastMemberDestroysHistory(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "Alice", media))
	s.SendChat("h1", "Alice", "hello", time.Now())
	s.Leave("h1")

	require.NoError(t, s.Join("h2", "room", "bob", "Bob", media))

	// Only the member-joined event: nothing left to replay.
	require.Len(t, gw.eventsFor("h2"), 1)
}

func TestUpdateMedia_ExcludesToggler(t *testing.T) {
	s, gw := newRoomServiceForTest()

	for _, h := range []domain.ConnectionID{"h1", "h2", "h3"} {
		require.NoError(t, s.Join(h, "room", string(h), string(h), media))
	}

	videoOff := media
	videoOff.VideoEnabled = false
	s.UpdateMedia("h2", videoOff)

	for _, h := range []domain.ConnectionID{"h1", "h3"} {
		events := gw.eventsFor(h)
		update, ok := events[len(events)-1].(domain.MediaUpdate)
		require.True(t, ok, "expected media update for %s", h)
		require.Equal(t, domain.ConnectionID("h2"), update.Handle)
		require.False(t, update.Media.VideoEnabled)
	}

	for _, evt := range gw.eventsFor("h2") {
		_, ok := evt.(domain.MediaUpdate)
		require.False(t, ok, "toggler must not hear its own update")
	}
}

func TestUpdateMedia_UnboundIsSilentNoop(t *testing.T) {
	s, gw := newRoomServiceForTest()

	s.UpdateMedia("ghost", media)
	require.Empty(t, gw.eventsFor("ghost"))
}

func TestSendChat_InclusiveAndOrdered(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "Alice", media))
	require.NoError(t, s.Join("h2", "room", "bob", "Bob", media))

	s.SendChat("h1", "Alice", "m1", time.Now())
	s.SendChat("h2", "Bob", "m2", time.Now())

	for _, h := range []domain.ConnectionID{"h1", "h2"} {
		var chats []domain.ChatEvent
		for _, evt := range gw.eventsFor(h) {
			if chat, ok := evt.(domain.ChatEvent); ok {
				chats = append(chats, chat)
			}
		}
		require.Len(t, chats, 2, "chat is broadcast to everyone including the sender")
		require.Equal(t, "m1", chats[0].Payload)
		require.Equal(t, "m2", chats[1].Payload)
	}
}

func TestSendChat_UnboundIsSilentNoop(t *testing.T) {
	s, gw := newRoomServiceForTest()

	s.SendChat("ghost", "Ghost", "boo", time.Now())
	require.Empty(t, gw.eventsFor("ghost"))
}

func TestJoin_ReplayToVanishedJoinerIsDropped(t *testing.T) {
	s, gw := newRoomServiceForTest()

	require.NoError(t, s.Join("h1", "room", "alice", "Alice", media))
	s.SendChat("h1", "Alice", "hello", time.Now())

	gw.markDead("h2")
	require.NoError(t, s.Join("h2", "room", "bob", "Bob", media))
	require.Empty(t, gw.eventsFor("h2"))
}

// Joins to two different rooms interleaved from many goroutines must never
// corrupt either roster.
func TestConcurrentJoins_AcrossRooms(t *testing.T) {
	s, gw := newRoomServiceForTest()

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			roomID := domain.RoomID("r1")
			if i%2 == 1 {
				roomID = "r2"
			}
			h := domain.ConnectionID(fmt.Sprintf("h%d", i))
			require.NoError(t, s.Join(h, roomID, string(h), string(h), media))
		}(i)
	}
	wg.Wait()

	// Every member's final member-joined event lists only handles of its
	// own room.
	for i := 0; i < n; i++ {
		h := domain.ConnectionID(fmt.Sprintf("h%d", i))
		events := gw.eventsFor(h)
		require.NotEmpty(t, events)
		last, ok := events[len(events)-1].(domain.MemberJoined)
		require.True(t, ok)
		for _, m := range last.Members {
			var idx int
			_, err := fmt.Sscanf(string(m), "h%d", &idx)
			require.NoError(t, err)
			require.Equal(t, i%2, idx%2, "room rosters must not mix")
		}
	}
}
