package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memeverse/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("create tag failed: %w", err)
	}
	return nil
}

// GetByUserAndName matches the tag name case-insensitively within one
// user's tags. Backs the (user_id, lower(name)) uniqueness rule.
func (r *TagRepository) GetByUserAndName(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query tag by name failed: %w", err)
	}
	return &tag, nil
}

// UpdateName rewrites the stored display casing of a tag name.
func (r *TagRepository) UpdateName(ctx context.Context, tagID uint, name string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("id = ?", tagID).
		Update("name", name).Error
	if err != nil {
		return fmt.Errorf("update tag name failed: %w", err)
	}
	return nil
}

// DeleteOwned deletes a tag only when it belongs to userID. Association
// rows cascade at the store level. Returns the number of rows removed.
func (r *TagRepository) DeleteOwned(ctx context.Context, tagID, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tagID, userID).
		Delete(&model.Tag{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete tag failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListByUser orders by most recently used first, never-used tags last,
// then newest created first.
func (r *TagRepository) ListByUser(ctx context.Context, userID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_used IS NULL, last_used DESC, created_at DESC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list user tags failed: %w", err)
	}
	return tags, nil
}

// ListForMeme returns the tags userID has put on memeID.
func (r *TagRepository) ListForMeme(ctx context.Context, userID, memeID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN meme_tags mt ON mt.tag_id = tags.id").
		Where("mt.meme_id = ? AND mt.user_id = ? AND tags.user_id = ?", memeID, userID, userID).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list meme tags failed: %w", err)
	}
	return tags, nil
}

// AddToMeme inserts the association; a duplicate triple is a no-op.
func (r *TagRepository) AddToMeme(ctx context.Context, userID, memeID, tagID uint) error {
	assoc := model.MemeTag{UserID: userID, MemeID: memeID, TagID: tagID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assoc).Error
	if err != nil {
		return fmt.Errorf("add tag to meme failed: %w", err)
	}
	return nil
}

func (r *TagRepository) RemoveFromMeme(ctx context.Context, userID, memeID, tagID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND meme_id = ? AND tag_id = ?", userID, memeID, tagID).
		Delete(&model.MemeTag{})
	if result.Error != nil {
		return 0, fmt.Errorf("remove tag from meme failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TagRepository) TouchLastUsed(ctx context.Context, tagID uint) error {
	now := time.Now()
	err := r.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("id = ?", tagID).
		Update("last_used", now).Error
	if err != nil {
		return fmt.Errorf("touch tag last_used failed: %w", err)
	}
	return nil
}
