package model

import "time"

// Media types recognized by the feed and media services. Anything else is
// served as a generic binary payload.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeGIF   = "gif"
)

// Meme is a stored media item. Rows are created by a separate ingestion
// process; this application only reads them. Rows with a NULL blob are
// excluded from the feed.
type Meme struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"size:1024" json:"url"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	FileData    []byte    `gorm:"type:longblob" json:"-"`
	MediaType   string    `gorm:"size:32;not null" json:"media_type"`
	AuthorID    string    `gorm:"size:64;index" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Meme) TableName() string {
	return "memes"
}
