package user

import "time"

type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	FullName     string `gorm:"not null"`
	ProfilePhoto *string
	Department   *string
	Bio          *string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Profile is the read-side view of a user with participation and friendship
// summaries.
type Profile struct {
	User
	EventsCreated int64
	EventsJoined  int64
	Friends       int64
}

type CreateInput struct {
	Email        string
	FullName     string
	ProfilePhoto *string
	Department   *string
	Bio          *string
}

// UpdateInput carries partial updates; nil fields are left unchanged.
type UpdateInput struct {
	Email        *string
	FullName     *string
	ProfilePhoto *string
	Department   *string
	Bio          *string
}

type ListFilter struct {
	Search string
	Skip   int
	Limit  int
}
