// Package repository declares the data-access interfaces used by the service
// layer. The gorm implementation lives in repository/gormdb; service tests
// substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/blogly/internal/model"
)

// UserRepository reads and writes users.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	// DeleteUser removes the user together with every post they authored.
	DeleteUser(ctx context.Context, id uint) error
}

// PostRepository reads and writes posts and their tag associations.
type PostRepository interface {
	// CreatePost inserts the post and one posts_tags row per tag ID in a
	// single transaction.
	CreatePost(ctx context.Context, post *model.Post, tagIDs []uint) error
	GetPostByID(ctx context.Context, id uint) (*model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint) ([]model.Post, error)
	ListRecentPosts(ctx context.Context, limit int) ([]model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	// ReplacePostTags deletes every association of the post and inserts tagIDs.
	ReplacePostTags(ctx context.Context, postID uint, tagIDs []uint) error
	DeletePost(ctx context.Context, id uint) error
}

// TagRepository reads and writes tags.
type TagRepository interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	GetTagByID(ctx context.Context, id uint) (*model.Tag, error)
	UpdateTag(ctx context.Context, tag *model.Tag) error
}
