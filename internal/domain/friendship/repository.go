package friendship

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// LockPair takes a transaction-scoped exclusive lock on the given pair
	// key, serializing request creation for one unordered user pair.
	LockPair(ctx context.Context, key int64) error

	UserExists(ctx context.Context, userID string) (bool, error)
	GetByID(ctx context.Context, id string) (*Friendship, error)
	// GetByIDForUpdate locks the row for the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Friendship, error)
	// FindActiveBetween returns the pending or accepted row between the two
	// users in either direction, or nil when none exists.
	FindActiveBetween(ctx context.Context, userID, friendID string) (*Friendship, error)
	Create(ctx context.Context, friendship *Friendship) error
	UpdateStatus(ctx context.Context, id, status string) error
	ListByUser(ctx context.Context, userID, status string) ([]Friendship, error)
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}
