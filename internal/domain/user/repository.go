package user

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	CountEventsCreated(ctx context.Context, userID string) (int64, error)
	CountEventsJoined(ctx context.Context, userID string) (int64, error)
	CountFriends(ctx context.Context, userID string) (int64, error)
}
