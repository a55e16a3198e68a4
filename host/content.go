package host

import (
	"context"
	"net/url"
	"sync"

	"gb-more-from-widget/block"
	"gb-more-from-widget/models"
	"gb-more-from-widget/repositories"
)

// PostFinder is the storage side of the content query.
type PostFinder interface {
	ListByCategory(ctx context.Context, opt repositories.ListByCategoryOptions) ([]models.Post, error)
}

// QueryFilter may rewrite a content query before it runs. Filters are skipped
// for queries that set SuppressFilters.
type QueryFilter func(q *block.ContentQuery)

// ContentSource answers block content queries from the post store.
type ContentSource struct {
	posts   PostFinder
	siteURL *url.URL

	mu      sync.RWMutex
	filters []QueryFilter
}

func NewContentSource(posts PostFinder, siteURL string) *ContentSource {
	cs := &ContentSource{posts: posts}
	if u, err := url.Parse(siteURL); err == nil && u.IsAbs() {
		cs.siteURL = u
	}
	return cs
}

// AddQueryFilter registers f for every later unsuppressed query.
func (s *ContentSource) AddQueryFilter(f QueryFilter) {
	if f == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, f)
}

func (s *ContentSource) QueryContent(ctx context.Context, q block.ContentQuery) ([]block.ContentItem, error) {
	if !q.SuppressFilters {
		s.mu.RLock()
		for _, f := range s.filters {
			f(&q)
		}
		s.mu.RUnlock()
	}

	posts, err := s.posts.ListByCategory(ctx, repositories.ListByCategoryOptions{
		CategoryID:   q.CategoryID,
		Limit:        q.Limit,
		IgnoreSticky: q.IgnoreSticky,
	})
	if err != nil {
		return nil, err
	}

	items := make([]block.ContentItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, s.mapPost(p))
	}
	return items, nil
}

func (s *ContentSource) mapPost(p models.Post) block.ContentItem {
	return block.ContentItem{
		ID:           p.ID.Hex(),
		Title:        p.Title,
		Permalink:    s.permalink(p.Link),
		PublishedAt:  p.PublishedAt,
		ThumbnailURL: p.ThumbnailURL,
	}
}

// permalink resolves site-relative links against the site URL.
func (s *ContentSource) permalink(link string) string {
	if s.siteURL == nil || link == "" {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil || ref.IsAbs() {
		return link
	}
	return s.siteURL.ResolveReference(ref).String()
}
