package app

import (
	"context"

	"memeverse/internal/model"
)

// Store interfaces are defined on the consumer side so services can be
// exercised in tests without a database. internal/repository provides
// the gorm-backed implementations.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	UpdateBio(ctx context.Context, username, bio string) error
	ListAll(ctx context.Context) ([]model.User, error)
	SearchByUsername(ctx context.Context, query string, limit int) ([]model.User, error)
	UpdateLocked(ctx context.Context, username string, update func(*model.User) error) (*model.User, error)
}

type MemeStore interface {
	GetByID(ctx context.Context, id uint) (*model.Meme, error)
	GetWithData(ctx context.Context, id uint) (*model.Meme, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Random(ctx context.Context, limit int, exclude []uint) ([]model.Meme, error)
	CountWithData(ctx context.Context) (int64, error)
	SearchByDescription(ctx context.Context, query string, limit int) ([]model.Meme, error)
}

type TagStore interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByUserAndName(ctx context.Context, userID uint, name string) (*model.Tag, error)
	UpdateName(ctx context.Context, tagID uint, name string) error
	DeleteOwned(ctx context.Context, tagID, userID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Tag, error)
	ListForMeme(ctx context.Context, userID, memeID uint) ([]model.Tag, error)
	AddToMeme(ctx context.Context, userID, memeID, tagID uint) error
	RemoveFromMeme(ctx context.Context, userID, memeID, tagID uint) (int64, error)
	TouchLastUsed(ctx context.Context, tagID uint) error
}

type ActivityStore interface {
	Create(ctx context.Context, event *model.ActivityEvent) error
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]model.ActivityEvent, error)
}

// ActivityPublisher hands like/tag events to the broker; persistence
// happens asynchronously in the worker.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, event model.ActivityEvent) error
}

// SeenCache remembers which meme IDs a viewer was recently served so the
// feed can bias against repeats. Failures are advisory only.
type SeenCache interface {
	SeenIDs(ctx context.Context, viewer string) ([]uint, error)
	MarkSeen(ctx context.Context, viewer string, ids []uint) error
}
