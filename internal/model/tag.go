package model

import "time"

// Tag is a user-owned label. Tags are scoped per user: the same meme can
// carry different tags for different users. (user_id, lower(name)) is
// unique; the service-level upsert enforces it.
type Tag struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	Name      string     `gorm:"size:64;not null" json:"name"`
	Color     string     `gorm:"size:8;not null" json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}

// MemeTag associates a tag with a meme for one user. Composite key keeps
// the association idempotent at the store level.
type MemeTag struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	MemeID uint `gorm:"primaryKey;autoIncrement:false" json:"meme_id"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;constraint:OnDelete:CASCADE" json:"tag_id"`
}

func (MemeTag) TableName() string {
	return "meme_tags"
}
