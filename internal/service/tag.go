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

// TagService handles tags. Names are not required to be unique.
type TagService struct {
	repo   repository.TagRepository
	logger *slog.Logger
}

func NewTagService(repo repository.TagRepository, logger *slog.Logger) *TagService {
	return &TagService{repo: repo, logger: logger}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		s.logger.Error("failed to list tags", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// Get returns the tag with its posts, or apperror.ErrNotFound.
func (s *TagService) Get(ctx context.Context, id uint) (*model.Tag, error) {
	return s.repo.GetTagByID(ctx, id)
}

func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{Name: strings.TrimSpace(name)}
	if tag.Name == "" {
		return nil, apperror.ValidationFailed("name", "tag name is required")
	}

	if err := s.repo.CreateTag(ctx, tag); err != nil {
		s.logger.Error("failed to create tag",
			slog.String("name", tag.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	s.logger.Info("tag created",
		slog.Uint64("id", uint64(tag.ID)),
		slog.String("name", tag.Name),
	)
	return tag, nil
}

// Update renames the tag. The tag must exist.
func (s *TagService) Update(ctx context.Context, id uint, name string) (*model.Tag, error) {
	tag, err := s.repo.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Name = strings.TrimSpace(name)
	if tag.Name == "" {
		return nil, apperror.ValidationFailed("name", "tag name is required")
	}

	if err := s.repo.UpdateTag(ctx, tag); err != nil {
		s.logger.Error("failed to update tag",
			slog.Uint64("id", uint64(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating tag: %w", err)
	}

	s.logger.Info("tag updated",
		slog.Uint64("id", uint64(id)),
		slog.String("name", tag.Name),
	)
	return tag, nil
}
