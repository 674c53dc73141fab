package event

import "time"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const ParticipantJoined = "joined"

type Event struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	CreatorID       string `gorm:"type:uuid;not null;index"`
	Title           string `gorm:"not null"`
	Description     *string
	Category        string `gorm:"not null;index"`
	Location        string `gorm:"not null"`
	ImageURL        *string
	StartTime       time.Time `gorm:"not null"`
	EndTime         *time.Time
	MaxParticipants *int
	Status          string    `gorm:"not null;default:'active'"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

type Participant struct {
	ID       string    `gorm:"type:uuid;primaryKey"`
	EventID  string    `gorm:"type:uuid;not null"`
	UserID   string    `gorm:"type:uuid;not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
	Status   string    `gorm:"not null;default:'joined'"`
}

func (Participant) TableName() string { return "event_participants" }

// ParticipantInfo is a participant row joined with the member's profile.
type ParticipantInfo struct {
	Participant
	Name  string
	Photo *string
}

// ParticipantPreview is the trimmed participant shape embedded in event views.
type ParticipantPreview struct {
	UserID string
	Name   string
	Photo  string
}

// Organizer is the denormalized creator slice of an event view. Nil photo and
// department are normal; a missing row entirely is substituted with a
// placeholder rather than failing the projection.
type Organizer struct {
	Name       string
	Photo      *string
	Department *string
}

// Detail is the read-side event projection: the event plus organizer fields
// and a participant preview.
type Detail struct {
	Event
	ParticipantCount    int64
	Participants        []ParticipantPreview
	OrganizerName       string
	OrganizerPhoto      *string
	OrganizerDepartment *string
	CurrentUserJoined   bool
}

type CreateInput struct {
	CreatorID       string
	Title           string
	Description     *string
	Category        string
	Location        string
	ImageURL        *string
	StartTime       time.Time
	EndTime         *time.Time
	MaxParticipants *int
}

// UpdateInput carries partial updates; nil fields are left unchanged.
type UpdateInput struct {
	Title           *string
	Description     *string
	Category        *string
	Location        *string
	ImageURL        *string
	StartTime       *time.Time
	EndTime         *time.Time
	MaxParticipants *int
	Status          *string
}

type ListFilter struct {
	Category      string
	Search        string
	CreatorID     string
	CurrentUserID string
	Skip          int
	Limit         int
}
