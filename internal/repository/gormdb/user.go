package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sakif/blogly/internal/apperror"
	"github.com/sakif/blogly/internal/model"
	"github.com/sakif/blogly/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// ListUsers returns every user in insertion order.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := db.conn.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("gormdb: listing users: %w", err)
	}
	return users, nil
}

// CreateUser inserts the user and fills in ID and timestamps.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if err := db.conn.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("gormdb: creating user: %w", err)
	}
	return nil
}

// GetUserByID returns apperror.ErrNotFound if no user has that ID.
func (db *DB) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := db.conn.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("gormdb: getting user %d: %w", id, err)
	}
	return &user, nil
}

// UpdateUser overwrites all editable columns, including empty values.
//
// A map is used instead of the struct because gorm's struct Updates skips
// zero values, which would make it impossible to clear image_url.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	result := db.conn.WithContext(ctx).
		Model(&model.User{ID: user.ID}).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"image_url":  user.ImageURL,
		})
	if result.Error != nil {
		return fmt.Errorf("gormdb: updating user %d: %w", user.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}
	return nil
}

// DeleteUser removes the user's post associations, posts and the user itself
// in one transaction.
func (db *DB) DeleteUser(ctx context.Context, id uint) error {
	return db.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authored := tx.Model(&model.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", authored).Delete(&model.PostTag{}).Error; err != nil {
			return fmt.Errorf("gormdb: deleting tags of user %d posts: %w", id, err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return fmt.Errorf("gormdb: deleting posts of user %d: %w", id, err)
		}

		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("gormdb: deleting user %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("user", id)
		}
		return nil
	})
}
