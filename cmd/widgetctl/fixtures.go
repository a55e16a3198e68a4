package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"gb-more-from-widget/block"
	"gb-more-from-widget/models"
)

// Fixtures 는 seed 명령이 읽는 yaml 문서 구조다.
type Fixtures struct {
	Categories []models.Category `yaml:"categories"`
	Posts      []FixturePost     `yaml:"posts"`
}

type FixturePost struct {
	Title        string    `yaml:"title"`
	Link         string    `yaml:"link"`
	PublishedAt  time.Time `yaml:"published_at"`
	ThumbnailURL string    `yaml:"thumbnail_url"`
	Categories   []int64   `yaml:"categories"`
	Sticky       bool      `yaml:"sticky"`
	Status       string    `yaml:"status"`
}

func (p FixturePost) toModel() *models.Post {
	return &models.Post{
		Title:        p.Title,
		Link:         p.Link,
		PublishedAt:  p.PublishedAt,
		ThumbnailURL: p.ThumbnailURL,
		CategoryIDs:  p.Categories,
		Sticky:       p.Sticky,
		Status:       p.Status,
	}
}

// LoadFixtures decodes and validates a fixtures document.
func LoadFixtures(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Fixtures{}, err
	}

	for i, c := range f.Categories {
		if c.ID < 1 {
			return Fixtures{}, fmt.Errorf("categories[%d]: id must be positive", i)
		}
		if c.Slug == "" {
			return Fixtures{}, fmt.Errorf("categories[%d]: slug is required", i)
		}
	}
	for i, p := range f.Posts {
		if p.Title == "" || p.Link == "" {
			return Fixtures{}, fmt.Errorf("posts[%d]: title and link are required", i)
		}
		switch p.Status {
		case "", models.PostStatusPublish, models.PostStatusDraft:
		default:
			return Fixtures{}, fmt.Errorf("posts[%d]: unknown status %q", i, p.Status)
		}
	}
	return f, nil
}

// SeedStore is where seed writes fixtures.
type SeedStore interface {
	UpsertCategory(ctx context.Context, c *models.Category) error
	PostExists(ctx context.Context, link string) (bool, error)
	InsertPost(ctx context.Context, p *models.Post) error
}

type SeedResult struct {
	Categories   int
	Posts        int
	SkippedPosts int
}

// Seed upserts every category and inserts posts whose link is not stored yet.
func Seed(ctx context.Context, store SeedStore, f Fixtures) (SeedResult, error) {
	var res SeedResult
	for i := range f.Categories {
		if err := store.UpsertCategory(ctx, &f.Categories[i]); err != nil {
			return res, fmt.Errorf("upsert category %d: %w", f.Categories[i].ID, err)
		}
		res.Categories++
	}
	for _, p := range f.Posts {
		exists, err := store.PostExists(ctx, p.Link)
		if err != nil {
			return res, fmt.Errorf("lookup post %s: %w", p.Link, err)
		}
		if exists {
			res.SkippedPosts++
			continue
		}
		if err := store.InsertPost(ctx, p.toModel()); err != nil {
			return res, fmt.Errorf("insert post %s: %w", p.Link, err)
		}
		res.Posts++
	}
	return res, nil
}

// renderFlags mirrors the block attributes for the render command.
type renderFlags struct {
	title     string
	category  string
	posts     int
	date      bool
	layout    string
	columns   int
	thumbnail bool
}

func (f renderFlags) attributes() block.Attributes {
	posts := f.posts
	if posts < 0 {
		posts = 0
	}
	return block.Attributes{
		Title:                f.title,
		Category:             f.category,
		PostsToShow:          posts,
		DisplayPostDate:      f.date,
		Layout:               f.layout,
		Columns:              float64(f.columns),
		DisplayPostThumbnail: f.thumbnail,
	}
}
