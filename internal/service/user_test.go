package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogly/internal/apperror"
)

func TestUserService_Create(t *testing.T) {
	svc := newTestServices(t)

	user, err := svc.users.Create(context.Background(), "  Alan ", "Alda", "")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alan", user.FirstName)

	users, err := svc.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1, "a created user is listed exactly once")
}

func TestUserService_Create_Validation(t *testing.T) {
	tests := []struct {
		name      string
		first     string
		last      string
		wantField string
	}{
		{"missing first name", "", "Alda", "first_name"},
		{"whitespace first name", "   ", "Alda", "first_name"},
		{"missing last name", "Alan", "", "last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)

			_, err := svc.users.Create(context.Background(), tt.first, tt.last, "")
			require.ErrorIs(t, err, apperror.ErrValidation)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Empty(t, svc.store.users, "nothing is saved on validation failure")
		})
	}
}

func TestUserService_Create_RepoError(t *testing.T) {
	svc := newTestServices(t)
	svc.store.err = errors.New("disk full")

	_, err := svc.users.Create(context.Background(), "Alan", "Alda", "")
	assert.ErrorContains(t, err, "disk full")
	assert.NotErrorIs(t, err, apperror.ErrValidation)
}

func TestUserService_Update_OverwritesAllFields(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user, err := svc.users.Create(ctx, "Alan", "Alda", "https://example.com/a.png")
	require.NoError(t, err)

	_, err = svc.users.Update(ctx, user.ID, "Al", "Alda", "")
	require.NoError(t, err)

	got, err := svc.users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Al", got.FirstName)
	assert.Empty(t, got.ImageURL)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.users.Update(context.Background(), 77, "A", "B", "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserService_Delete_CascadesPosts(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user, _ := svc.users.Create(ctx, "Alan", "Alda", "")
	post, err := svc.posts.Create(ctx, user.ID, "hello", "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.users.Delete(ctx, user.ID))

	users, _ := svc.users.List(ctx)
	assert.Empty(t, users)
	_, err = svc.posts.Get(ctx, post.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := newTestServices(t)

	err := svc.users.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserService_Profile(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user, _ := svc.users.Create(ctx, "Alan", "Alda", "")
	_, _ = svc.posts.Create(ctx, user.ID, "one", "", nil)
	_, _ = svc.posts.Create(ctx, user.ID, "two", "", nil)
	svc.store.userLookups = 0

	found, posts, err := svc.users.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alan", found.FirstName)
	require.Len(t, posts, 2)
	assert.Equal(t, "two", posts[0].Title)
	assert.Equal(t, 1, svc.store.userLookups, "the user is read once per profile")

	_, _, err = svc.users.Profile(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
