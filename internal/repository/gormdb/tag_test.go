package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogly/internal/apperror"
	"github.com/sakif/blogly/internal/model"
)

func TestCreateTag_DuplicateNamesAllowed(t *testing.T) {
	db := newTestDB(t)
	createTestTag(t, db, "dup")
	createTestTag(t, db, "dup")

	tags, err := db.ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestGetTagByID_PostsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "Ann", "Author")
	tag := createTestTag(t, db, "go")
	createTestPost(t, db, author.ID, "first", tag.ID)
	createTestPost(t, db, author.ID, "untagged")
	createTestPost(t, db, author.ID, "second", tag.ID)

	got, err := db.GetTagByID(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, got.Posts, 2)
	assert.Equal(t, "second", got.Posts[0].Title)
	assert.Equal(t, "first", got.Posts[1].Title)
}

func TestGetTagByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetTagByID(context.Background(), 11)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateTag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tag := createTestTag(t, db, "x")

	tag.Name = "y"
	require.NoError(t, db.UpdateTag(ctx, tag))

	got, err := db.GetTagByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", got.Name)
}

func TestUpdateTag_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateTag(context.Background(), &model.Tag{ID: 99, Name: "nope"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
