package thumbnail

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"gb-more-from-widget/logger"
)

const (
	minImageWidth  = 300
	minImageHeight = 300
)

// FromHTML 는 페이지 HTML 에서 대표 이미지 URL 을 찾는다.
// readability → meta → link → trafilatura → goose → 본문 <img> 순으로 시도하고,
// 찾지 못하면 "" 를 반환한다.
func FromHTML(htmlStr string, pageURL string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	var baseURL *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			baseURL = u
		}
	}

	if imgURL := findTopImageWithReadability(doc, baseURL); imgURL != "" {
		return resolveImageURL(imgURL, baseURL), nil
	}
	if imgURL := findTopImageFromMeta(doc); imgURL != "" {
		return resolveImageURL(imgURL, baseURL), nil
	}
	if imgURL := findTopImageFromLink(doc); imgURL != "" {
		return resolveImageURL(imgURL, baseURL), nil
	}
	if imgURL := findTopImageWithTrafilatura(htmlStr, baseURL); imgURL != "" {
		return resolveImageURL(imgURL, baseURL), nil
	}
	if imgURL := findTopImageWithGoose(htmlStr, pageURL); imgURL != "" {
		return resolveImageURL(imgURL, baseURL), nil
	}
	if imgURL := findTopImageFromImg(doc, baseURL, minImageWidth, minImageHeight); imgURL != "" {
		return imgURL, nil
	}

	logger.DebugWithFields("no top image found", logger.Fields{
		"page_url":  pageURL,
		"html_size": len(htmlStr),
	})
	return "", nil
}

func findTopImageWithReadability(doc *html.Node, baseURL *url.URL) string {
	article, err := readability.FromDocument(doc, baseURL)
	if err != nil {
		return ""
	}
	return article.Image
}

func findTopImageWithTrafilatura(htmlStr string, baseURL *url.URL) string {
	result, err := trafilatura.Extract(strings.NewReader(htmlStr), trafilatura.Options{
		OriginalURL:   baseURL,
		IncludeImages: true,
	})
	if err != nil || result == nil {
		return ""
	}
	return result.Metadata.Image
}

func findTopImageWithGoose(htmlStr string, pageURL string) string {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, pageURL)
	if err != nil || article == nil {
		return ""
	}
	return article.TopImage
}

func findTopImageFromMeta(doc *html.Node) string {
	// 우선순위: Open Graph 이미지 → Twitter 카드 이미지 → 기타 이미지 관련 메타
	if u := findMetaContent(doc, "property", []string{
		"og:image",
		"og:image:url",
		"og:image:secure_url",
	}); u != "" {
		return u
	}
	if u := findMetaContent(doc, "name", []string{
		"twitter:image",
		"twitter:image:src",
		"thumbnail",
		"image",
	}); u != "" {
		return u
	}
	return findMetaContent(doc, "itemprop", []string{"image"})
}

func findMetaContent(root *html.Node, key string, candidates []string) string {
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		candidateSet[strings.ToLower(c)] = struct{}{}
	}

	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var attrValue, content string
			for _, a := range n.Attr {
				switch strings.ToLower(a.Key) {
				case strings.ToLower(key):
					attrValue = strings.ToLower(a.Val)
				case "content":
					content = a.Val
				}
			}
			if content != "" && attrValue != "" {
				if _, ok := candidateSet[attrValue]; ok {
					result = content
					return
				}
			}
		}
		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return result
}

func findTopImageFromLink(doc *html.Node) string {
	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, href string
			for _, a := range n.Attr {
				switch strings.ToLower(a.Key) {
				case "rel":
					rel = strings.ToLower(a.Val)
				case "href":
					href = a.Val
				}
			}
			if href != "" && (rel == "image_src" || strings.Contains(rel, "thumbnail")) {
				result = href
				return
			}
		}
		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

// findTopImageFromImg 는 width/height 속성이 썸네일로 쓰기 충분한 첫 <img> 를 고른다.
func findTopImageFromImg(doc *html.Node, baseURL *url.URL, minWidth, minHeight int) string {
	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			var src string
			var width, height int
			for _, a := range n.Attr {
				switch strings.ToLower(a.Key) {
				case "src":
					src = a.Val
				case "width":
					width, _ = strconv.Atoi(a.Val)
				case "height":
					height, _ = strconv.Atoi(a.Val)
				}
			}
			if width >= minWidth && height >= minHeight {
				if abs, ok := makeAbsoluteImageURL(src, baseURL); ok {
					result = abs
					return
				}
			}
		}
		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

func makeAbsoluteImageURL(src string, baseURL *url.URL) (string, bool) {
	if src == "" {
		return "", false
	}
	parsed, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	if parsed.IsAbs() {
		return parsed.String(), true
	}
	if baseURL == nil {
		return "", false
	}
	return baseURL.ResolveReference(parsed).String(), true
}

func resolveImageURL(src string, baseURL *url.URL) string {
	if abs, ok := makeAbsoluteImageURL(src, baseURL); ok {
		return abs
	}
	return src
}
