package event

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDForUpdate locks the event row for the duration of the enclosing
	// transaction, serializing concurrent joins on the same event.
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
	ListCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error

	UserExists(ctx context.Context, userID string) (bool, error)
	// GetOrganizer returns nil without error when the user row is gone.
	GetOrganizer(ctx context.Context, userID string) (*Organizer, error)

	CreateParticipant(ctx context.Context, participant *Participant) error
	// DeleteParticipant reports whether a row was actually removed.
	DeleteParticipant(ctx context.Context, eventID, userID string) (bool, error)
	HasJoined(ctx context.Context, eventID, userID string) (bool, error)
	CountParticipants(ctx context.Context, eventID string) (int64, error)
	// ListParticipants returns participant rows with profile info, oldest
	// first; limit <= 0 means all.
	ListParticipants(ctx context.Context, eventID string, limit int) ([]ParticipantInfo, error)
}
