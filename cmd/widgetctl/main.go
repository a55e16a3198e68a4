package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"gb-more-from-widget/block"
	"gb-more-from-widget/cmd/internal/app"
	"gb-more-from-widget/config"
	"gb-more-from-widget/db"
	"gb-more-from-widget/logger"
	"gb-more-from-widget/models"
	"gb-more-from-widget/repositories"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "widgetctl",
		Short:         "Seed content and render the More From block from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(seedCmd(), importFeedCmd(), renderCmd(), versionCmd())
	return rootCmd
}

// connect 는 config.yaml 을 읽고 Mongo 연결과 블록 호스트를 구성한다.
func connect(ctx context.Context) (*app.App, error) {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(ctx, cfg.Mongo); err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return app.New(cfg, db.Database())
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and posts from a fixtures file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()

			fixtures, err := LoadFixtures(fh)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			ctx := cmd.Context()
			a, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			res, err := Seed(ctx, repoStore{posts: a.Posts, categories: a.Categories}, fixtures)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d posts (%d already present)\n",
				res.Categories, res.Posts, res.SkippedPosts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "Fixtures yaml file")
	return cmd
}

func renderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the block markup for a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			return render(ctx, a.Controller, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", "", "Category id")
	cmd.Flags().StringVar(&flags.title, "title", "More From", "Heading text")
	cmd.Flags().IntVar(&flags.posts, "posts", 3, "Number of posts to show")
	cmd.Flags().BoolVar(&flags.date, "date", false, "Show post dates")
	cmd.Flags().StringVar(&flags.layout, "layout", block.LayoutList, "list or grid")
	cmd.Flags().IntVar(&flags.columns, "columns", 3, "Grid columns")
	cmd.Flags().BoolVar(&flags.thumbnail, "thumbnail", false, "Show thumbnails")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

type blockBuilder interface {
	Build(ctx context.Context, attrs block.Attributes) (string, error)
}

func render(ctx context.Context, b blockBuilder, flags renderFlags, out, errOut io.Writer) error {
	markup, err := b.Build(ctx, flags.attributes())
	switch {
	case errors.Is(err, block.ErrInvalidAttribute):
		return fmt.Errorf("category %q is not a valid category id", flags.category)
	case errors.Is(err, block.ErrEmptyResult):
		fmt.Fprintln(errOut, "no published posts in this category")
	case err != nil:
		return err
	}
	fmt.Fprintln(out, markup)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "widgetctl %s (commit %s, %s %s/%s)\n",
				version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// repoStore adapts the Mongo repositories to SeedStore and ImportStore.
type repoStore struct {
	posts      *repositories.PostRepository
	categories *repositories.CategoryRepository
}

func (s repoStore) UpsertCategory(ctx context.Context, c *models.Category) error {
	_, err := s.categories.Upsert(ctx, c)
	return err
}

func (s repoStore) PostExists(ctx context.Context, link string) (bool, error) {
	return s.posts.IsExistByLink(ctx, link)
}

func (s repoStore) InsertPost(ctx context.Context, p *models.Post) error {
	_, err := s.posts.Insert(ctx, p)
	return err
}
