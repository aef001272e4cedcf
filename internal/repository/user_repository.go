package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memeverse/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateBio(ctx context.Context, username, bio string) error {
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Update("bio", bio).Error
	if err != nil {
		return fmt.Errorf("update bio failed: %w", err)
	}
	return nil
}

// ListAll returns all users ordered newest account first. Blobs aside,
// the liked_memes column is loaded so callers can derive like counts.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "created_at", "liked_memes").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SearchByUsername(ctx context.Context, query string, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "created_at").
		Where("username LIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users failed: %w", err)
	}
	return users, nil
}

// UpdateLocked loads the user row under a row lock, applies update, and
// writes the row back in the same transaction. Serializes the liked_memes
// and ui_settings read-modify-write cycles that would otherwise lose
// updates under concurrent requests from the same user.
// Returns (nil, nil) when no such user exists.
func (r *UserRepository) UpdateLocked(ctx context.Context, username string, update func(*model.User) error) (*model.User, error) {
	var updated *model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ?", username).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("lock user row failed: %w", err)
		}

		if err := update(&user); err != nil {
			return err
		}
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save user failed: %w", err)
		}
		updated = &user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
