package block

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type fakePlatform struct {
	items    []ContentItem
	queryErr error
	queries  []ContentQuery

	registered map[string]BlockType
	nonceErr   error
}

func (f *fakePlatform) RegisterBlockType(name string, bt BlockType) error {
	if f.registered == nil {
		f.registered = map[string]BlockType{}
	}
	f.registered[name] = bt
	return nil
}

func (f *fakePlatform) QueryContent(_ context.Context, q ContentQuery) ([]ContentItem, error) {
	f.queries = append(f.queries, q)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if q.Limit < len(f.items) {
		return f.items[:q.Limit], nil
	}
	return f.items, nil
}

func (f *fakePlatform) AdminAjaxURL() string { return "https://example.com/admin-ajax" }

func (f *fakePlatform) AssetURL(rel string) string { return "https://cdn.example.com/" + rel }

func (f *fakePlatform) CreateNonce(action string) (string, error) {
	if f.nonceErr != nil {
		return "", f.nonceErr
	}
	return "nonce-for-" + action, nil
}

func sampleItems() []ContentItem {
	base := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	return []ContentItem{
		{ID: "1", Title: "First post", Permalink: "https://example.com/first", PublishedAt: base, ThumbnailURL: "https://example.com/first.png"},
		{ID: "2", Title: "Second post", Permalink: "https://example.com/second", PublishedAt: base.Add(-24 * time.Hour)},
		{ID: "3", Title: "Third post", Permalink: "https://example.com/third", PublishedAt: base.Add(-48 * time.Hour), ThumbnailURL: "https://example.com/third.png"},
	}
}

// findAll parses a markup fragment and returns every element with the tag.
func findAll(t *testing.T, markup, tag string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		t.Fatalf("failed to parse markup: %v", err)
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestRenderScenarioListWithDates(t *testing.T) {
	p := &fakePlatform{items: sampleItems()}
	c := NewController(p)

	out := c.Render(context.Background(), Attributes{
		Category:             "5",
		PostsToShow:          2,
		DisplayPostDate:      true,
		DisplayPostThumbnail: false,
		Layout:               LayoutList,
		Columns:              3,
	})

	items := findAll(t, out, "li")
	if len(items) != 2 {
		t.Fatalf("expected 2 list items, got %d: %s", len(items), out)
	}
	for i, li := range items {
		if len(findAll(t, renderNode(t, li), "a")) != 1 {
			t.Fatalf("item %d: expected one link", i)
		}
		if len(findAll(t, renderNode(t, li), "time")) != 1 {
			t.Fatalf("item %d: expected one time element", i)
		}
	}
	if imgs := findAll(t, out, "img"); len(imgs) != 0 {
		t.Fatalf("expected no images, got %d", len(imgs))
	}

	if len(p.queries) != 1 {
		t.Fatalf("expected one query, got %d", len(p.queries))
	}
	want := ContentQuery{CategoryID: 5, Limit: 2, IgnoreSticky: true, SuppressFilters: false}
	if p.queries[0] != want {
		t.Fatalf("expected query %+v, got %+v", want, p.queries[0])
	}
}

func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		t.Fatalf("failed to render node: %v", err)
	}
	return b.String()
}

func TestRenderRejectsInvalidCategory(t *testing.T) {
	for _, category := range []string{"", "abc", "0", "-3", "5abc", "0x1A", "NaN", "1e", " "} {
		t.Run(category, func(t *testing.T) {
			p := &fakePlatform{items: sampleItems()}
			c := NewController(p)

			out, err := c.Build(context.Background(), Attributes{Title: "More", Category: category, PostsToShow: 3})
			if out != "" {
				t.Fatalf("expected empty output, got %q", out)
			}
			if !errors.Is(err, ErrInvalidAttribute) {
				t.Fatalf("expected ErrInvalidAttribute, got %v", err)
			}
			if len(p.queries) != 0 {
				t.Fatalf("expected no query for invalid category")
			}
		})
	}
}

func TestRenderEmptyResultKeepsContainer(t *testing.T) {
	p := &fakePlatform{}
	c := NewController(p)

	out, err := c.Build(context.Background(), Attributes{Title: "More From", Category: "7", PostsToShow: 3, Layout: LayoutGrid, Columns: 2})
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	want := `<div class="wp-block-gb-more-from-widget"><h3 class="more-from-title">More From</h3><ul class="is-grid columns-2"></ul></div>`
	if out != want {
		t.Fatalf("unexpected markup:\n got %s\nwant %s", out, want)
	}
}

func TestRenderQueryFailureRendersEmptyList(t *testing.T) {
	p := &fakePlatform{queryErr: errors.New("connection refused")}
	c := NewController(p)

	out := c.Render(context.Background(), Attributes{Category: "7", PostsToShow: 3})
	if got := len(findAll(t, out, "li")); got != 0 {
		t.Fatalf("expected no list items, got %d", got)
	}
	if len(findAll(t, out, "ul")) != 1 {
		t.Fatalf("expected list container, got %q", out)
	}
}

func TestRenderExactMarkup(t *testing.T) {
	p := &fakePlatform{items: sampleItems()[:1]}
	c := NewController(p)

	out := c.Render(context.Background(), Attributes{
		Category:             "5",
		PostsToShow:          1,
		DisplayPostThumbnail: true,
		Layout:               LayoutList,
		Columns:              3,
	})
	want := `<div class="wp-block-gb-more-from-widget"><ul class="is-list columns-3"><li>
<img src="https://example.com/first.png" /><a href="https://example.com/first">First post</a></li>
</ul></div>`
	if out != want {
		t.Fatalf("unexpected markup:\n got %s\nwant %s", out, want)
	}
}

func TestRenderListClass(t *testing.T) {
	testCases := []struct {
		name    string
		layout  string
		columns float64
		want    string
	}{
		{name: "grid", layout: "grid", columns: 4, want: "is-grid columns-4"},
		{name: "list", layout: "list", columns: 2, want: "is-list columns-2"},
		{name: "unknown layout", layout: "carousel", columns: 5, want: "is-list columns-5"},
		{name: "empty layout", layout: "", columns: 1, want: "is-list columns-1"},
		{name: "zero columns", layout: "grid", columns: 0, want: "is-grid columns-0"},
		{name: "fractional columns", layout: "list", columns: 2.5, want: "is-list columns-2.5"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := NewController(&fakePlatform{items: sampleItems()})
			out := c.Render(context.Background(), Attributes{Category: "1", PostsToShow: 1, Layout: testCase.layout, Columns: testCase.columns})

			lists := findAll(t, out, "ul")
			if len(lists) != 1 {
				t.Fatalf("expected one list, got %d", len(lists))
			}
			if got := attr(lists[0], "class"); got != testCase.want {
				t.Fatalf("expected class %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestRenderColumnsDefaultWhenAttributeAbsent(t *testing.T) {
	c := NewController(&fakePlatform{items: sampleItems()})
	attrs := ParseAttributes(map[string]any{"category": "5"}, c.Schema())

	out := c.Render(context.Background(), attrs)
	lists := findAll(t, out, "ul")
	if len(lists) != 1 || attr(lists[0], "class") != "is-list columns-3" {
		t.Fatalf("expected default list class, got %q", out)
	}
}

func TestRenderColumnsKeepsGivenValue(t *testing.T) {
	testCases := []struct {
		name    string
		columns any
		want    string
	}{
		{name: "explicit zero", columns: 0, want: "is-list columns-0"},
		{name: "json zero", columns: json.Number("0"), want: "is-list columns-0"},
		{name: "fractional number", columns: 2.5, want: "is-list columns-2.5"},
		{name: "fractional string", columns: "2.5", want: "is-list columns-2.5"},
		{name: "whole float", columns: 4.0, want: "is-list columns-4"},
		{name: "null falls back to default", columns: nil, want: "is-list columns-3"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := NewController(&fakePlatform{items: sampleItems()})
			attrs := ParseAttributes(map[string]any{"category": "5", "columns": testCase.columns}, c.Schema())

			out := c.Render(context.Background(), attrs)
			lists := findAll(t, out, "ul")
			if len(lists) != 1 {
				t.Fatalf("expected one list, got %d", len(lists))
			}
			if got := attr(lists[0], "class"); got != testCase.want {
				t.Fatalf("expected class %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestRenderThumbnailOnlyWhenEnabledAndPresent(t *testing.T) {
	testCases := []struct {
		name     string
		enabled  bool
		wantSrcs []string
	}{
		{name: "disabled", enabled: false, wantSrcs: nil},
		{name: "enabled", enabled: true, wantSrcs: []string{"https://example.com/first.png", "https://example.com/third.png"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := NewController(&fakePlatform{items: sampleItems()})
			out := c.Render(context.Background(), Attributes{Category: "5", PostsToShow: 3, DisplayPostThumbnail: testCase.enabled})

			imgs := findAll(t, out, "img")
			if len(imgs) != len(testCase.wantSrcs) {
				t.Fatalf("expected %d images, got %d", len(testCase.wantSrcs), len(imgs))
			}
			for i, img := range imgs {
				if got := attr(img, "src"); got != testCase.wantSrcs[i] {
					t.Fatalf("image %d: expected src %q, got %q", i, testCase.wantSrcs[i], got)
				}
			}
			if got := len(findAll(t, out, "li")); got != 3 {
				t.Fatalf("expected 3 items, got %d", got)
			}
		})
	}
}

func TestRenderDateIndependentOfThumbnail(t *testing.T) {
	for _, thumbnail := range []bool{false, true} {
		c := NewController(&fakePlatform{items: sampleItems()})
		out := c.Render(context.Background(), Attributes{Category: "5", PostsToShow: 3, DisplayPostDate: true, DisplayPostThumbnail: thumbnail})

		times := findAll(t, out, "time")
		if len(times) != 3 {
			t.Fatalf("thumbnail=%v: expected 3 time elements, got %d", thumbnail, len(times))
		}
		if got := attr(times[0], "datetime"); got != "2024-03-05T14:30:00+00:00" {
			t.Fatalf("unexpected datetime %q", got)
		}
		if got := attr(times[0], "class"); got != "post-date" {
			t.Fatalf("unexpected time class %q", got)
		}
		if got := text(times[0]); got != "March 5, 2024" {
			t.Fatalf("unexpected display date %q", got)
		}
	}

	c := NewController(&fakePlatform{items: sampleItems()})
	out := c.Render(context.Background(), Attributes{Category: "5", PostsToShow: 3, DisplayPostThumbnail: true})
	if got := len(findAll(t, out, "time")); got != 0 {
		t.Fatalf("expected no time elements, got %d", got)
	}
}

func TestRenderDateUsesConfiguredLayoutAndLocation(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	c := NewController(&fakePlatform{items: sampleItems()[:1]}, WithDateFormat("2006.01.02"), WithLocation(loc))

	out := c.Render(context.Background(), Attributes{Category: "5", PostsToShow: 1, DisplayPostDate: true})
	times := findAll(t, out, "time")
	if len(times) != 1 {
		t.Fatalf("expected one time element, got %d", len(times))
	}
	if got := attr(times[0], "datetime"); got != "2024-03-05T23:30:00+09:00" {
		t.Fatalf("unexpected datetime %q", got)
	}
	if got := text(times[0]); got != "2024.03.05" {
		t.Fatalf("unexpected display date %q", got)
	}
}

func TestRenderEscapesContent(t *testing.T) {
	items := []ContentItem{{
		ID:           "9",
		Title:        `<script>alert("x")</script> & more`,
		Permalink:    `javascript:alert(1)`,
		ThumbnailURL: `javascript:alert(2)`,
	}}
	c := NewController(&fakePlatform{items: items})

	out := c.Render(context.Background(), Attributes{Category: "5", PostsToShow: 1, DisplayPostThumbnail: true})
	if strings.Contains(out, "<script>") {
		t.Fatalf("title was not escaped: %s", out)
	}
	if strings.Contains(out, "javascript:") {
		t.Fatalf("unsafe URL leaked into markup: %s", out)
	}
	links := findAll(t, out, "a")
	if len(links) != 1 || text(links[0]) != `<script>alert("x")</script> & more` {
		t.Fatalf("unexpected link text in %s", out)
	}
}

func TestRenderHeadingEscaping(t *testing.T) {
	attrs := Attributes{Title: "<em>More</em> From", Category: "5", PostsToShow: 1}

	raw := NewController(&fakePlatform{items: sampleItems()}).Render(context.Background(), attrs)
	if !strings.Contains(raw, `<h3 class="more-from-title"><em>More</em> From</h3>`) {
		t.Fatalf("expected verbatim heading, got %s", raw)
	}

	escaped := NewController(&fakePlatform{items: sampleItems()}, WithEscapedTitle(true)).Render(context.Background(), attrs)
	if !strings.Contains(escaped, `<h3 class="more-from-title">&lt;em&gt;More&lt;/em&gt; From</h3>`) {
		t.Fatalf("expected escaped heading, got %s", escaped)
	}

	noTitle := NewController(&fakePlatform{items: sampleItems()}).Render(context.Background(), Attributes{Category: "5", PostsToShow: 1})
	if strings.Contains(noTitle, "<h3") {
		t.Fatalf("expected no heading, got %s", noTitle)
	}
}

func TestQueryRelatedKeepsHostOrder(t *testing.T) {
	items := sampleItems()
	items[0], items[2] = items[2], items[0]
	p := &fakePlatform{items: items}
	c := NewController(p)

	got, ok := c.QueryRelated(context.Background(), "12", 3)
	if !ok {
		t.Fatalf("expected items")
	}
	for i := range items {
		if got[i].ID != items[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, items[i].ID, got[i].ID)
		}
	}
	if p.queries[0].CategoryID != 12 || !p.queries[0].IgnoreSticky || p.queries[0].SuppressFilters {
		t.Fatalf("unexpected query %+v", p.queries[0])
	}
}

func TestQueryRelatedAbsent(t *testing.T) {
	testCases := []struct {
		name     string
		platform *fakePlatform
		category string
	}{
		{name: "empty category", platform: &fakePlatform{items: sampleItems()}, category: ""},
		{name: "non numeric", platform: &fakePlatform{items: sampleItems()}, category: "news"},
		{name: "no posts", platform: &fakePlatform{}, category: "3"},
		{name: "query error", platform: &fakePlatform{queryErr: errors.New("boom")}, category: "3"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := NewController(testCase.platform)
			items, ok := c.QueryRelated(context.Background(), testCase.category, 3)
			if ok || items != nil {
				t.Fatalf("expected absent result, got %v %v", items, ok)
			}
		})
	}
}

func TestCategoryID(t *testing.T) {
	testCases := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{in: "5", want: 5, wantOK: true},
		{in: " 42", want: 42, wantOK: true},
		{in: "42 ", want: 42, wantOK: true},
		{in: "+7", want: 7, wantOK: true},
		{in: "7.9", want: 7, wantOK: true},
		{in: "1e2", want: 100, wantOK: true},
		{in: ".5"},
		{in: ""},
		{in: "0"},
		{in: "-1"},
		{in: "abc"},
		{in: "0x1A"},
		{in: "Inf"},
		{in: "12abc"},
	}

	for _, testCase := range testCases {
		got, ok := CategoryID(testCase.in)
		if ok != testCase.wantOK || got != testCase.want {
			t.Fatalf("CategoryID(%q) = %d, %v; want %d, %v", testCase.in, got, ok, testCase.want, testCase.wantOK)
		}
	}
}
