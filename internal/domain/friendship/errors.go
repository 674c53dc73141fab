package friendship

import "errors"

var (
	ErrNotFound          = errors.New("friendship not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfFriendship    = errors.New("cannot send a friend request to yourself")
	ErrAlreadyExists     = errors.New("friendship already exists")
	ErrInvalidTransition = errors.New("friendship is not pending")
	ErrNotRecipient      = errors.New("only the recipient can respond")
	ErrInvalidStatus     = errors.New("invalid friendship status")
)
