package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sakif/blogly/internal/apperror"
	"github.com/sakif/blogly/internal/model"
	"github.com/sakif/blogly/internal/repository"
)

var _ repository.TagRepository = (*DB)(nil)

func (db *DB) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := db.conn.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("gormdb: listing tags: %w", err)
	}
	return tags, nil
}

// CreateTag inserts the tag. Duplicate names are allowed.
func (db *DB) CreateTag(ctx context.Context, tag *model.Tag) error {
	if err := db.conn.WithContext(ctx).Omit(clause.Associations).Create(tag).Error; err != nil {
		return fmt.Errorf("gormdb: creating tag: %w", err)
	}
	return nil
}

// GetTagByID loads the tag with its posts, newest first.
func (db *DB) GetTagByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	err := db.conn.WithContext(ctx).
		Preload("Posts", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC, id DESC")
		}).
		First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("tag", id)
		}
		return nil, fmt.Errorf("gormdb: getting tag %d: %w", id, err)
	}
	return &tag, nil
}

func (db *DB) UpdateTag(ctx context.Context, tag *model.Tag) error {
	result := db.conn.WithContext(ctx).
		Model(&model.Tag{ID: tag.ID}).
		Update("name", tag.Name)
	if result.Error != nil {
		return fmt.Errorf("gormdb: updating tag %d: %w", tag.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("tag", tag.ID)
	}
	return nil
}
