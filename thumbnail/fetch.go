package thumbnail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

const maxPageBytes = 4 << 20

// PageSource returns the HTML of a page.
type PageSource func(ctx context.Context, pageURL string) (string, error)

// HTTPSource fetches server-rendered pages with a plain GET.
func HTTPSource(client *http.Client) PageSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return func(ctx context.Context, pageURL string) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, pageURL)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}

// ChromeSource renders client-side pages in headless Chrome. CHROME_PATH
// overrides the browser binary.
func ChromeSource() PageSource {
	return func(ctx context.Context, pageURL string) (string, error) {
		chromePath := os.Getenv("CHROME_PATH")
		if chromePath == "" {
			chromePath = "/usr/bin/chromium-browser" // Docker/Linux 기본
		}

		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.UserAgent(userAgent),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("headless", true),
		)

		allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
		defer cancel()
		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()
		browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
		defer cancel()

		var htmlContent string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(time.Second),
			chromedp.OuterHTML("html", &htmlContent),
		)
		if err != nil {
			return "", err
		}
		return htmlContent, nil
	}
}

// Resolver finds the top image of a page fetched from source.
func Resolver(source PageSource) func(ctx context.Context, pageURL string) (string, error) {
	return func(ctx context.Context, pageURL string) (string, error) {
		page, err := source(ctx, pageURL)
		if err != nil {
			return "", err
		}
		return FromHTML(page, pageURL)
	}
}
