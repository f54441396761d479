package domain

import (
	"time"
)

// ChatMessage is one entry of a room's chat log. Canonical field order is
// sender first, payload second; every layer keeps that order.
type ChatMessage struct {
	SenderName string
	Payload    string
	Origin     ConnectionID
	SentAt     time.Time
}
