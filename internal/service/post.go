package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/blogly/internal/apperror"
	"github.com/sakif/blogly/internal/model"
	"github.com/sakif/blogly/internal/repository"
)

// PostForm is everything the new-post and edit-post pages render: the author,
// the post being edited (nil on the new-post page), every tag, and which of
// them are currently checked.
type PostForm struct {
	Author   *model.User
	Post     *model.Post
	Tags     []model.Tag
	Selected map[uint]bool
}

// PostService handles posts and their tag associations.
type PostService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	tags   repository.TagRepository
	logger *slog.Logger
}

func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	tags repository.TagRepository,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		tags:   tags,
		logger: logger,
	}
}

// NewPostForm loads the author and the full tag list for the add-post page.
func (s *PostService) NewPostForm(ctx context.Context, userID uint) (*PostForm, error) {
	author, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return &PostForm{Author: author, Tags: tags, Selected: map[uint]bool{}}, nil
}

// Create saves a post for the user with the given tags. Repeated tag IDs are
// collapsed; IDs that match no tag fail at the database.
func (s *PostService) Create(ctx context.Context, userID uint, title, content string, tagIDs []uint) (*model.Post, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: userID,
	}
	tagIDs = uniqueIDs(tagIDs)

	if err := s.posts.CreatePost(ctx, post, tagIDs); err != nil {
		s.logger.Error("failed to create post",
			slog.Uint64("author_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Uint64("id", uint64(post.ID)),
		slog.Uint64("author_id", uint64(userID)),
		slog.Int("tags", len(tagIDs)),
	)
	return post, nil
}

// Get returns the post with its author and tags, or apperror.ErrNotFound.
func (s *PostService) Get(ctx context.Context, id uint) (*model.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

// EditForm loads the post, every tag, and the set of tags already on the post.
func (s *PostService) EditForm(ctx context.Context, id uint) (*PostForm, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return &PostForm{
		Author:   &post.Author,
		Post:     post,
		Tags:     tags,
		Selected: post.TagIDs(),
	}, nil
}

// Update overwrites title and content, then replaces the tag set.
//
// The two writes are separate commits. If the second fails, the new title and
// content stay and the old tags are kept.
func (s *PostService) Update(ctx context.Context, id uint, title, content string, tagIDs []uint) (*model.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	post.Title = title
	post.Content = content

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		s.logger.Error("failed to update post",
			slog.Uint64("id", uint64(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating post: %w", err)
	}

	tagIDs = uniqueIDs(tagIDs)
	if err := s.posts.ReplacePostTags(ctx, id, tagIDs); err != nil {
		s.logger.Error("failed to replace post tags",
			slog.Uint64("id", uint64(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("replacing tags of post %d: %w", id, err)
	}

	s.logger.Info("post updated",
		slog.Uint64("id", uint64(id)),
		slog.Int("tags", len(tagIDs)),
	)
	return post, nil
}

// Delete removes the post and its tag associations.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", slog.Uint64("id", uint64(id)))
	return nil
}

// Recent returns the newest posts across all users. limit <= 0 uses the
// repository default.
func (s *PostService) Recent(ctx context.Context, limit int) ([]model.Post, error) {
	posts, err := s.posts.ListRecentPosts(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list recent posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing recent posts: %w", err)
	}
	return posts, nil
}

// uniqueIDs drops repeated IDs, keeping first-seen order.
func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
