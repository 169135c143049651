// Package seed fills a database with fake users, tags and posts for local
// development. Everything goes through the services, so seeded rows obey the
// same rules as rows created through the web pages.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/sakif/blogly/internal/service"
)

// Options controls how much data is generated.
type Options struct {
	Users        int
	PostsPerUser int
	Tags         int
	// MaxTagsPerPost caps how many tags each post gets; 0 means 3.
	MaxTagsPerPost int
	// Seed makes the output reproducible; 0 picks a random seed.
	Seed int64
}

// Result counts what was created.
type Result struct {
	Users int
	Posts int
	Tags  int
}

// Seeder generates demo data through the services.
type Seeder struct {
	users  *service.UserService
	posts  *service.PostService
	tags   *service.TagService
	logger *slog.Logger
}

func NewSeeder(users *service.UserService, posts *service.PostService, tags *service.TagService, logger *slog.Logger) *Seeder {
	return &Seeder{users: users, posts: posts, tags: tags, logger: logger}
}

// Run creates opts.Tags tags, then opts.Users users with opts.PostsPerUser
// posts each. It stops at the first error.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	faker := gofakeit.New(opts.Seed)
	maxTags := opts.MaxTagsPerPost
	if maxTags <= 0 {
		maxTags = 3
	}

	tagIDs := make([]uint, 0, opts.Tags)
	for i := 0; i < opts.Tags; i++ {
		tag, err := s.tags.Create(ctx, strings.ToLower(faker.HipsterWord()))
		if err != nil {
			return res, fmt.Errorf("seed: creating tag: %w", err)
		}
		tagIDs = append(tagIDs, tag.ID)
		res.Tags++
	}

	for i := 0; i < opts.Users; i++ {
		imageURL := ""
		if faker.Bool() {
			imageURL = fmt.Sprintf("https://picsum.photos/seed/%s/200/200", faker.UUID())
		}
		user, err := s.users.Create(ctx, faker.FirstName(), faker.LastName(), imageURL)
		if err != nil {
			return res, fmt.Errorf("seed: creating user: %w", err)
		}
		res.Users++

		for j := 0; j < opts.PostsPerUser; j++ {
			_, err := s.posts.Create(ctx, user.ID,
				strings.TrimSuffix(faker.Sentence(faker.Number(3, 7)), "."),
				faker.Paragraph(1, 3, 12, "\n\n"),
				pickTags(faker, tagIDs, maxTags),
			)
			if err != nil {
				return res, fmt.Errorf("seed: creating post: %w", err)
			}
			res.Posts++
		}
	}

	s.logger.Info("seed complete",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
		slog.Int("tags", res.Tags),
	)
	return res, nil
}

// pickTags returns up to max random IDs from ids. Repeats are possible; the
// post service collapses them.
func pickTags(faker *gofakeit.Faker, ids []uint, max int) []uint {
	if len(ids) == 0 {
		return nil
	}
	n := faker.Number(0, max)
	picked := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, ids[faker.Number(0, len(ids)-1)])
	}
	return picked
}
