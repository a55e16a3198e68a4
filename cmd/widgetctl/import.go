package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gb-more-from-widget/db"
	"gb-more-from-widget/feeder"
	"gb-more-from-widget/logger"
	"gb-more-from-widget/models"
	"gb-more-from-widget/thumbnail"
)

var ErrUnknownCategory = errors.New("category does not exist")

// ImportStore is where import-feed writes posts.
type ImportStore interface {
	CategoryExists(ctx context.Context, id int64) (bool, error)
	PostExists(ctx context.Context, link string) (bool, error)
	InsertPost(ctx context.Context, p *models.Post) error
	UpdateThumbnailURL(ctx context.Context, id primitive.ObjectID, url string) error
}

// ThumbnailResolver finds the top image of a post page.
type ThumbnailResolver func(ctx context.Context, link string) (string, error)

type ImportResult struct {
	Imported    int
	Skipped     int
	Thumbnails  int
	ThumbErrors int
}

// ImportFeedItems files every new feed item under categoryID. Items without a
// feed thumbnail are inserted first and get their thumbnail from resolve
// afterwards; resolve failures are logged and do not stop the import.
func ImportFeedItems(ctx context.Context, store ImportStore, items []feeder.RssFeedItem, categoryID int64, resolve ThumbnailResolver) (ImportResult, error) {
	var res ImportResult

	ok, err := store.CategoryExists(ctx, categoryID)
	if err != nil {
		return res, err
	}
	if !ok {
		return res, fmt.Errorf("%w: %d", ErrUnknownCategory, categoryID)
	}

	for _, item := range items {
		if item.Link == "" || item.Title == "" {
			res.Skipped++
			continue
		}
		exists, err := store.PostExists(ctx, item.Link)
		if err != nil {
			return res, fmt.Errorf("lookup post %s: %w", item.Link, err)
		}
		if exists {
			res.Skipped++
			continue
		}

		p := &models.Post{
			ID:           primitive.NewObjectID(),
			Status:       models.PostStatusPublish,
			Title:        item.Title,
			Link:         item.Link,
			PublishedAt:  item.PublishedAt,
			ThumbnailURL: item.ThumbnailURL,
			CategoryIDs:  []int64{categoryID},
		}
		if err := store.InsertPost(ctx, p); err != nil {
			return res, fmt.Errorf("insert post %s: %w", item.Link, err)
		}
		res.Imported++

		if p.ThumbnailURL != "" || resolve == nil {
			continue
		}
		img, err := resolve(ctx, p.Link)
		if err != nil {
			res.ThumbErrors++
			logger.WarnWithFields("thumbnail lookup failed", logger.Fields{
				"link":  p.Link,
				"error": err.Error(),
			})
			continue
		}
		if img == "" {
			continue
		}
		if err := store.UpdateThumbnailURL(ctx, p.ID, img); err != nil {
			return res, fmt.Errorf("update thumbnail %s: %w", p.Link, err)
		}
		res.Thumbnails++
	}
	return res, nil
}

func importFeedCmd() *cobra.Command {
	var (
		feedURL    string
		categoryID int64
		limit      int
		thumbnails bool
		renderJS   bool
		insecure   bool
	)

	cmd := &cobra.Command{
		Use:   "import-feed",
		Short: "Import posts from an RSS/Atom feed into a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			items, err := feeder.FetchRssFeeds(ctx, feeder.NewHTTPClient(insecure), feedURL, limit)
			if err != nil {
				return err
			}

			a, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			var resolve ThumbnailResolver
			if thumbnails {
				source := thumbnail.HTTPSource(nil)
				if renderJS {
					source = thumbnail.ChromeSource()
				}
				resolve = thumbnail.Resolver(source)
			}

			res, err := ImportFeedItems(ctx, repoStore{posts: a.Posts, categories: a.Categories}, items, categoryID, resolve)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts, skipped %d, thumbnails %d (%d failed)\n",
				res.Imported, res.Skipped, res.Thumbnails, res.ThumbErrors)
			return nil
		},
	}

	cmd.Flags().StringVar(&feedURL, "url", "", "Feed URL")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Category id the posts are filed under")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of feed items (0 for all)")
	cmd.Flags().BoolVar(&thumbnails, "thumbnails", true, "Look up thumbnails for items without one")
	cmd.Flags().BoolVar(&renderJS, "render-js", false, "Render pages in headless Chrome before looking for thumbnails")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS verification when fetching the feed")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (s repoStore) CategoryExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.categories.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

func (s repoStore) UpdateThumbnailURL(ctx context.Context, id primitive.ObjectID, url string) error {
	return s.posts.UpdateThumbnailURL(ctx, id, url)
}
