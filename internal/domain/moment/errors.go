package moment

import "errors"

var (
	ErrNotFound       = errors.New("moment not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrNotParticipant = errors.New("user did not participate in this event")
	ErrInvalidInput   = errors.New("invalid input")
)
