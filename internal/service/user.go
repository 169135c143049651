// Package service contains the business rules of the blog.
//
// The layering follows one direction:
//
//	Handler (HTTP)  → parses forms, renders pages, redirects
//	Service         → trims input, checks required fields, orchestrates repositories
//	Repository      → reads/writes the database
//
// Services accept primitives rather than *http.Request, so the seed command can
// drive them exactly like the handlers do. Errors come back as apperror values;
// the handler decides which status code they become.
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

// UserService handles listing, creating, editing and deleting users.
type UserService struct {
	users  repository.UserRepository
	posts  repository.PostRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, posts repository.PostRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		posts:  posts,
		logger: logger,
	}
}

// List returns all users in the order they were created.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get returns the user or apperror.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// Profile returns the user together with their posts, newest first, for the
// user detail page. A missing user is apperror.ErrNotFound.
func (s *UserService) Profile(ctx context.Context, id uint) (*model.User, []model.Post, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.ListPostsByAuthor(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("listing posts of user %d: %w", id, err)
	}
	return user, posts, nil
}

// Create validates and saves a new user. The image URL is optional.
func (s *UserService) Create(ctx context.Context, firstName, lastName, imageURL string) (*model.User, error) {
	user := &model.User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		ImageURL:  strings.TrimSpace(imageURL),
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("name", user.FullName()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.Uint64("id", uint64(user.ID)),
		slog.String("name", user.FullName()),
	)
	return user, nil
}

// Update overwrites all three editable fields. An empty image URL clears the
// stored one.
func (s *UserService) Update(ctx context.Context, id uint, firstName, lastName, imageURL string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(firstName)
	user.LastName = strings.TrimSpace(lastName)
	user.ImageURL = strings.TrimSpace(imageURL)
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.Uint64("id", uint64(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.Uint64("id", uint64(id)))
	return user, nil
}

// Delete removes the user and, with them, every post they wrote.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Uint64("id", uint64(id)))
	return nil
}

func validateUser(u *model.User) error {
	if u.FirstName == "" {
		return apperror.ValidationFailed("first_name", "first name is required")
	}
	if u.LastName == "" {
		return apperror.ValidationFailed("last_name", "last name is required")
	}
	return nil
}
