package moment

import "context"

type Repository interface {
	Create(ctx context.Context, moment *Moment) error
	GetByID(ctx context.Context, id string) (*Moment, error)
	List(ctx context.Context, filter ListFilter) ([]Moment, error)
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, id string) (bool, error)

	UserExists(ctx context.Context, userID string) (bool, error)
	EventExists(ctx context.Context, eventID string) (bool, error)
	// HasParticipated reports whether the user holds any participant row for
	// the event, active or left.
	HasParticipated(ctx context.Context, eventID, userID string) (bool, error)
	// GetEventContext returns nil without error when the event row is gone.
	GetEventContext(ctx context.Context, eventID string) (*EventContext, error)
}
