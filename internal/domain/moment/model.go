package moment

import "time"

type Moment struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index"`
	EventID   string `gorm:"type:uuid;not null;index"`
	PhotoURL  string `gorm:"not null"`
	Caption   *string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// EventContext is the slice of the owning event shown next to a moment.
type EventContext struct {
	Title     string
	Location  string
	StartTime time.Time
}

// Detail is a moment with its event context. EventTitle falls back to a
// placeholder when the event has been deleted under the reader.
type Detail struct {
	Moment
	EventTitle     string
	EventLocation  string
	EventStartTime *time.Time
}

type CreateInput struct {
	UserID   string
	EventID  string
	PhotoURL string
	Caption  *string
}

type ListFilter struct {
	UserID  string
	EventID string
	Skip    int
	Limit   int
}
