package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gb-more-from-widget/block"
	"gb-more-from-widget/models"
)

const sampleFixtures = `
categories:
  - id: 5
    name: Engineering
    slug: engineering
posts:
  - title: Hello
    link: https://blog.example.com/hello
    published_at: 2024-03-01T09:00:00Z
    categories: [5]
  - title: Pinned
    link: https://blog.example.com/pinned
    published_at: 2024-02-01T09:00:00Z
    categories: [5]
    sticky: true
    status: draft
`

func TestLoadFixtures(t *testing.T) {
	f, err := LoadFixtures(strings.NewReader(sampleFixtures))
	require.NoError(t, err)

	require.Len(t, f.Categories, 1)
	assert.Equal(t, int64(5), f.Categories[0].ID)
	require.Len(t, f.Posts, 2)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), f.Posts[0].PublishedAt.UTC())
	assert.Equal(t, []int64{5}, f.Posts[0].Categories)
	assert.True(t, f.Posts[1].Sticky)
}

func TestLoadFixturesRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"bad category id": "categories:\n  - id: 0\n    slug: x\n",
		"missing slug":    "categories:\n  - id: 3\n",
		"missing link":    "posts:\n  - title: Hello\n",
		"bad status":      "posts:\n  - title: Hello\n    link: /h\n    status: trash\n",
		"unknown field":   "posts:\n  - title: Hello\n    link: /h\n    summary: nope\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFixtures(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}

	f, err := LoadFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Posts)
}

type memStore struct {
	categories []models.Category
	posts      []models.Post
	existing   map[string]bool
	insertErr  error
}

func (m *memStore) UpsertCategory(_ context.Context, c *models.Category) error {
	m.categories = append(m.categories, *c)
	return nil
}

func (m *memStore) PostExists(_ context.Context, link string) (bool, error) {
	return m.existing[link], nil
}

func (m *memStore) InsertPost(_ context.Context, p *models.Post) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.posts = append(m.posts, *p)
	return nil
}

func TestSeed(t *testing.T) {
	f, err := LoadFixtures(strings.NewReader(sampleFixtures))
	require.NoError(t, err)

	store := &memStore{existing: map[string]bool{"https://blog.example.com/pinned": true}}
	res, err := Seed(context.Background(), store, f)
	require.NoError(t, err)

	assert.Equal(t, SeedResult{Categories: 1, Posts: 1, SkippedPosts: 1}, res)
	require.Len(t, store.posts, 1)
	assert.Equal(t, "Hello", store.posts[0].Title)
	assert.Equal(t, []int64{5}, store.posts[0].CategoryIDs)
}

func TestSeedStopsOnInsertError(t *testing.T) {
	f, err := LoadFixtures(strings.NewReader(sampleFixtures))
	require.NoError(t, err)

	store := &memStore{insertErr: errors.New("duplicate key")}
	_, err = Seed(context.Background(), store, f)
	assert.ErrorContains(t, err, "insert post https://blog.example.com/hello")
}

type stubBuilder struct {
	got    block.Attributes
	markup string
	err    error
}

func (s *stubBuilder) Build(_ context.Context, attrs block.Attributes) (string, error) {
	s.got = attrs
	return s.markup, s.err
}

func TestRender(t *testing.T) {
	b := &stubBuilder{markup: `<div class="wp-block-gb-more-from-widget"></div>`}
	var out, errOut bytes.Buffer

	flags := renderFlags{category: "5", posts: -2, layout: block.LayoutGrid, columns: 2, date: true, title: "More"}
	require.NoError(t, render(context.Background(), b, flags, &out, &errOut))

	assert.Equal(t, block.Attributes{
		Title:           "More",
		Category:        "5",
		PostsToShow:     0,
		DisplayPostDate: true,
		Layout:          block.LayoutGrid,
		Columns:         2,
	}, b.got)
	assert.Equal(t, b.markup+"\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRenderReportsEmptyAndInvalid(t *testing.T) {
	var out, errOut bytes.Buffer
	empty := &stubBuilder{markup: "<div></div>", err: block.ErrEmptyResult}
	require.NoError(t, render(context.Background(), empty, renderFlags{category: "5"}, &out, &errOut))
	assert.Equal(t, "<div></div>\n", out.String())
	assert.Contains(t, errOut.String(), "no published posts")

	invalid := &stubBuilder{err: block.ErrInvalidAttribute}
	err := render(context.Background(), invalid, renderFlags{category: "news"}, &out, &errOut)
	assert.ErrorContains(t, err, `"news"`)
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "widgetctl dev"))
}

func TestRenderRequiresCategory(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render"})

	err := root.Execute()
	assert.ErrorContains(t, err, "category")
}
