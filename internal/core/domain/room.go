package domain

// RoomSnapshot is a point-in-time copy of one room's roster. Members are in
// join order; the maps only ever contain current members.
type RoomSnapshot struct {
	RoomID       RoomID
	Members      []ConnectionID
	Usernames    map[ConnectionID]string
	DisplayNames map[ConnectionID]string
	Media        map[ConnectionID]MediaState
}

// Departure is what Leave reports back so the remaining members can be told.
type Departure struct {
	RoomID      RoomID
	DisplayName string
	Remaining   []ConnectionID
	RoomClosed  bool
}
