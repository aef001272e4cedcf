package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"memeverse/internal/model"
)

type MemeRepository struct {
	db *gorm.DB
}

func NewMemeRepository(db *gorm.DB) *MemeRepository {
	return &MemeRepository{db: db}
}

// GetByID returns meme metadata without the blob, or (nil, nil) when
// the row does not exist.
func (r *MemeRepository) GetByID(ctx context.Context, id uint) (*model.Meme, error) {
	var meme model.Meme
	err := r.db.WithContext(ctx).
		Select("id", "url", "media_type", "author_id", "created_at").
		First(&meme, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query meme by id failed: %w", err)
	}
	return &meme, nil
}

// GetWithData returns the meme including its binary payload.
func (r *MemeRepository) GetWithData(ctx context.Context, id uint) (*model.Meme, error) {
	var meme model.Meme
	err := r.db.WithContext(ctx).First(&meme, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query meme with data failed: %w", err)
	}
	return &meme, nil
}

func (r *MemeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Meme{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check meme exists failed: %w", err)
	}
	return count > 0, nil
}

// Random samples up to limit memes with a non-null blob, store-side
// random order. IDs in exclude are skipped when given.
func (r *MemeRepository) Random(ctx context.Context, limit int, exclude []uint) ([]model.Meme, error) {
	query := r.db.WithContext(ctx).
		Select("id", "media_type").
		Where("file_data IS NOT NULL")
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var memes []model.Meme
	err := query.Order("RAND()").Limit(limit).Find(&memes).Error
	if err != nil {
		return nil, fmt.Errorf("query random memes failed: %w", err)
	}
	return memes, nil
}

// CountWithData counts memes eligible for the feed.
func (r *MemeRepository) CountWithData(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Meme{}).
		Where("file_data IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count memes failed: %w", err)
	}
	return count, nil
}

func (r *MemeRepository) SearchByDescription(ctx context.Context, query string, limit int) ([]model.Meme, error) {
	var memes []model.Meme
	err := r.db.WithContext(ctx).
		Select("id", "media_type").
		Where("description LIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&memes).Error
	if err != nil {
		return nil, fmt.Errorf("search memes failed: %w", err)
	}
	return memes, nil
}
