// Command seed fills the configured database with development data.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"uplift/internal/config"
	"uplift/internal/database"
	"uplift/internal/middleware"
	"uplift/internal/seed"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.ExtraUsers, "users", opts.ExtraUsers, "number of generated users beyond the fixed personas")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per generated user")
	flag.IntVar(&opts.RepliesPerPost, "replies", opts.RepliesPerPost, "replies per post")
	flag.IntVar(&opts.ReactionsPerPost, "reactions", opts.ReactionsPerPost, "reactions per post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		middleware.Logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
