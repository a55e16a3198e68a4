package feeder

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RssFeedItem 은 피드에서 가져온 글 하나다.
type RssFeedItem struct {
	Title        string
	Link         string
	PublishedAt  time.Time
	ThumbnailURL string
}

const FEEDER_TIMEOUT = 30 * time.Second

// rssUserAgent 는 RSS 피드를 요청할 때 사용할 브라우저 유사 User-Agent 이다.
// 일부 블로그(특히 CDN/보안 프록시 뒤에 있는 경우)는 기본 Go HTTP 클라이언트 UA를 차단한다.
const rssUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// NewHTTPClient returns the client FetchRssFeeds uses. insecure skips TLS
// verification for feeds served with broken certificates.
func NewHTTPClient(insecure bool) *http.Client {
	return &http.Client{
		Timeout: FEEDER_TIMEOUT,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			// 리다이렉트 시 이전 요청의 User-Agent를 유지
			req.Header.Set("User-Agent", rssUserAgent)
			return nil
		},
	}
}

// FetchRssFeeds fetches and parses the feed at rssURL. If limit is greater
// than 0, only the first limit items are returned.
func FetchRssFeeds(ctx context.Context, client *http.Client, rssURL string, limit int) ([]RssFeedItem, error) {
	if client == nil {
		client = NewHTTPClient(false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rssURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSS request: %w", err)
	}
	req.Header.Set("User-Agent", rssUserAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodySample, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("failed to fetch RSS feed: status code %d, url: %s, body: %s", resp.StatusCode, rssURL, string(bodySample))
	}

	cleanedReader, err := cleanControlCharacters(resp.Body)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(cleanedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	var items []RssFeedItem
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		items = append(items, RssFeedItem{
			Title:        strings.TrimSpace(item.Title),
			Link:         item.Link,
			PublishedAt:  published,
			ThumbnailURL: itemImage(item),
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// itemImage 는 item image → media:thumbnail → 이미지 enclosure 순으로 썸네일을 찾는다.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"thumbnail", "content"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

// XML에서 허용되지 않는 제어 문자 범위 (0x00-0x1F 중 탭, LF, CR 제외)
var invalidControlCharRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

func cleanControlCharacters(r io.Reader) (io.Reader, error) {
	bodyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read body for cleaning: %w", err)
	}
	return bytes.NewReader(invalidControlCharRegex.ReplaceAll(bodyBytes, nil)), nil
}
