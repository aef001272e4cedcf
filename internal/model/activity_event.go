package model

import "time"

// Actions recorded in the activity log.
const (
	ActionLiked    = "liked"
	ActionUnliked  = "unliked"
	ActionTagged   = "tagged"
	ActionUntagged = "untagged"
)

// ActivityEvent is an audit row for like/tag actions. Events are published
// to the broker by the services and persisted asynchronously by the worker.
type ActivityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"size:64;not null" json:"username"`
	Action    string    `gorm:"size:16;not null" json:"action"`
	MemeID    string    `gorm:"size:32;not null" json:"meme_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}
