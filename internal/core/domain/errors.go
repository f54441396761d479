package domain

import "errors"

var (
	ErrAlreadyInRoom     = errors.New("connection already bound to another room")
	ErrNotInRoom         = errors.New("connection not bound to a room")
	ErrTargetUnreachable = errors.New("target connection unreachable")

	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrMeetingExists   = errors.New("meeting code already exists")
	ErrMeetingNotFound = errors.New("meeting not found")
)
