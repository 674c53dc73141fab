package event

import "errors"

var (
	ErrNotFound      = errors.New("event not found")
	ErrNotActive     = errors.New("event is not active")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyJoined = errors.New("already joined this event")
	ErrEventFull     = errors.New("event is full")
	ErrNotJoined     = errors.New("participant not found")
	ErrInvalidInput  = errors.New("invalid input")
)
