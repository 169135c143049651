package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/sakif/blogly/internal/apperror"
	"github.com/sakif/blogly/internal/model"
	"github.com/sakif/blogly/internal/repository"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockStore keeps users, posts, tags and their links in maps and implements
// all three repository interfaces, the same way gormdb.DB does. Setting err
// makes every write fail with it.

type mockStore struct {
	users    map[uint]*model.User
	posts    map[uint]*model.Post
	tags     map[uint]*model.Tag
	postTags map[uint][]uint // post ID → tag IDs
	nextID   uint
	err      error

	replaceCalls int
	userLookups  int
}

var (
	_ repository.UserRepository = (*mockStore)(nil)
	_ repository.PostRepository = (*mockStore)(nil)
	_ repository.TagRepository  = (*mockStore)(nil)
)

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[uint]*model.User),
		posts:    make(map[uint]*model.Post),
		tags:     make(map[uint]*model.Tag),
		postTags: make(map[uint][]uint),
	}
}

func (m *mockStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockStore) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = m.id()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockStore) GetUserByID(_ context.Context, id uint) (*model.User, error) {
	m.userLookups++
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockStore) UpdateUser(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockStore) DeleteUser(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	for pid, p := range m.posts {
		if p.AuthorID == id {
			delete(m.posts, pid)
			delete(m.postTags, pid)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *mockStore) CreatePost(_ context.Context, post *model.Post, tagIDs []uint) error {
	if m.err != nil {
		return m.err
	}
	post.ID = m.id()
	stored := *post
	m.posts[post.ID] = &stored
	m.postTags[post.ID] = append([]uint(nil), tagIDs...)
	return nil
}

func (m *mockStore) GetPostByID(_ context.Context, id uint) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	result := *p
	result.Author = *m.users[p.AuthorID]
	result.Tags = nil
	for _, tid := range m.postTags[id] {
		result.Tags = append(result.Tags, *m.tags[tid])
	}
	return &result, nil
}

func (m *mockStore) ListPostsByAuthor(_ context.Context, authorID uint) ([]model.Post, error) {
	var out []model.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockStore) ListRecentPosts(_ context.Context, limit int) ([]model.Post, error) {
	var out []model.Post
	for _, p := range m.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockStore) UpdatePost(_ context.Context, post *model.Post) error {
	if m.err != nil {
		return m.err
	}
	stored, ok := m.posts[post.ID]
	if !ok {
		return apperror.NotFound("post", post.ID)
	}
	stored.Title = post.Title
	stored.Content = post.Content
	return nil
}

func (m *mockStore) ReplacePostTags(_ context.Context, postID uint, tagIDs []uint) error {
	m.replaceCalls++
	if m.err != nil {
		return m.err
	}
	m.postTags[postID] = append([]uint(nil), tagIDs...)
	return nil
}

func (m *mockStore) DeletePost(_ context.Context, id uint) error {
	if _, ok := m.posts[id]; !ok {
		return apperror.NotFound("post", id)
	}
	delete(m.posts, id)
	delete(m.postTags, id)
	return nil
}

func (m *mockStore) ListTags(_ context.Context) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) CreateTag(_ context.Context, tag *model.Tag) error {
	if m.err != nil {
		return m.err
	}
	tag.ID = m.id()
	stored := *tag
	m.tags[tag.ID] = &stored
	return nil
}

func (m *mockStore) GetTagByID(_ context.Context, id uint) (*model.Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return nil, apperror.NotFound("tag", id)
	}
	result := *t
	return &result, nil
}

func (m *mockStore) UpdateTag(_ context.Context, tag *model.Tag) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.tags[tag.ID]; !ok {
		return apperror.NotFound("tag", tag.ID)
	}
	m.tags[tag.ID].Name = tag.Name
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServices struct {
	users *UserService
	posts *PostService
	tags  *TagService
	store *mockStore
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	store := newMockStore()
	logger := testLogger()
	return testServices{
		users: NewUserService(store, store, logger),
		posts: NewPostService(store, store, store, logger),
		tags:  NewTagService(store, logger),
		store: store,
	}
}
