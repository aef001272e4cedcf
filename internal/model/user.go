package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// StringList is a JSON array of strings stored in a single column.
// users.liked_memes keeps meme IDs as decimal strings in insertion order
// (oldest first); services reverse at read time to present newest first.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	payload, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list failed: %w", err)
	}
	return string(payload), nil
}

// Scan tolerates NULL and malformed stored JSON by yielding an empty list.
// A corrupt liked_memes cell must never make a user row unreadable.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		*l = StringList{}
		return nil
	}
	*l = items
	return nil
}

// Contains reports membership of id in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Bio          *string        `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL    *string        `gorm:"size:512" json:"avatar_url,omitempty"`
	LikedMemes   StringList     `gorm:"type:json" json:"-"`
	UISettings   datatypes.JSON `gorm:"column:ui_settings;type:json" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
