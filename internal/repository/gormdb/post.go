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

var _ repository.PostRepository = (*DB)(nil)

const defaultRecentLimit = 5

// CreatePost inserts the post and its tag associations together.
func (db *DB) CreatePost(ctx context.Context, post *model.Post, tagIDs []uint) error {
	return db.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Author and Tags are written explicitly, never through association saving.
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return fmt.Errorf("gormdb: creating post: %w", err)
		}
		if err := insertPostTags(tx, post.ID, tagIDs); err != nil {
			return err
		}
		return nil
	})
}

// GetPostByID loads the post with its author and tags (sorted by name).
func (db *DB) GetPostByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := db.conn.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("name, id")
		}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("gormdb: getting post %d: %w", id, err)
	}
	return &post, nil
}

// ListPostsByAuthor returns the author's posts, newest first.
func (db *DB) ListPostsByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	var posts []model.Post
	err := db.conn.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gormdb: listing posts of user %d: %w", authorID, err)
	}
	return posts, nil
}

// ListRecentPosts returns the newest posts across all authors.
func (db *DB) ListRecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	var posts []model.Post
	err := db.conn.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gormdb: listing recent posts: %w", err)
	}
	return posts, nil
}

// UpdatePost overwrites title and content. Tag associations are untouched;
// see ReplacePostTags.
func (db *DB) UpdatePost(ctx context.Context, post *model.Post) error {
	result := db.conn.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		})
	if result.Error != nil {
		return fmt.Errorf("gormdb: updating post %d: %w", post.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("post", post.ID)
	}
	return nil
}

// ReplacePostTags drops every association of the post and recreates the set
// from tagIDs. No diffing: the whole set is rewritten on every call.
func (db *DB) ReplacePostTags(ctx context.Context, postID uint, tagIDs []uint) error {
	return db.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostTag{}).Error; err != nil {
			return fmt.Errorf("gormdb: clearing tags of post %d: %w", postID, err)
		}
		return insertPostTags(tx, postID, tagIDs)
	})
}

// DeletePost removes the post's associations first, then the post.
func (db *DB) DeletePost(ctx context.Context, id uint) error {
	return db.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return fmt.Errorf("gormdb: clearing tags of post %d: %w", id, err)
		}

		result := tx.Delete(&model.Post{}, id)
		if result.Error != nil {
			return fmt.Errorf("gormdb: deleting post %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("post", id)
		}
		return nil
	})
}

func insertPostTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, model.PostTag{PostID: postID, TagID: tagID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("gormdb: tagging post %d: %w", postID, err)
	}
	return nil
}
