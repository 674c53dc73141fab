package friendship

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Friendship is a directed request row: user_id sent it, friend_id receives
// it. At most one pending/accepted row exists per unordered pair.
type Friendship struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	FriendID  string    `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"not null;default:'pending'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ValidStatus reports whether value is one of the three lifecycle states.
func ValidStatus(value string) bool {
	return value == StatusPending || value == StatusAccepted || value == StatusRejected
}
