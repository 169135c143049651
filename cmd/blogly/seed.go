package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sakif/blogly/internal/seed"
	"github.com/sakif/blogly/internal/service"
)

func seedCmd() *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users, tags and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := openDB(cfg, logger)
			if err != nil {
				logger.Error("failed to open database", slog.String("error", err.Error()))
				return err
			}
			defer db.Close()

			seeder := seed.NewSeeder(
				service.NewUserService(db, db, logger),
				service.NewPostService(db, db, db, logger),
				service.NewTagService(db, logger),
				logger,
			)
			if _, err := seeder.Run(cmd.Context(), opts); err != nil {
				logger.Error("seeding failed", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", 5, "number of users to create")
	cmd.Flags().IntVar(&opts.PostsPerUser, "posts", 3, "posts per user")
	cmd.Flags().IntVar(&opts.Tags, "tags", 6, "number of tags to create")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	return cmd
}
