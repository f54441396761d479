package domain

import "time"

type User struct {
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated principal attached to a request once its
// bearer token has been verified.
type Identity struct {
	Name     string
	Username string
}
