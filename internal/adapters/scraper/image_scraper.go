package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ImageScraper looks up candidate product photos for the admin product form
// so new soaps get an image without a photo shoot.
type ImageScraper struct {
	client *http.Client
}

func NewImageScraper() *ImageScraper {
	return &ImageScraper{client: &http.Client{Timeout: 20 * time.Second}}
}

var imgURLRe = regexp.MustCompile(`"(https?://[^"]+\.(?:jpg|jpeg|png|webp)[^"]*)"`)

func (s *ImageScraper) SearchImages(ctx context.Context, query string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = 6
	}
	if maxResults > 20 {
		maxResults = 20
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("empty query")
	}
	searchURL := fmt.Sprintf("https://www.google.com/search?tbm=isch&q=%s&safe=active", url.QueryEscape(q+" handmade soap"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	images := []string{}
	seen := map[string]bool{}
	add := func(u string) {
		if len(images) >= maxResults || u == "" || seen[u] {
			return
		}
		lower := strings.ToLower(u)
		if strings.Contains(lower, "logo") || strings.Contains(lower, "icon") || strings.Contains(u, "gstatic.com") {
			return
		}
		seen[u] = true
		images = append(images, u)
	}

	doc.Find("img[data-src], img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("data-src"); ok && strings.HasPrefix(src, "http") {
			add(src)
		} else if src, ok := sel.Attr("src"); ok && strings.HasPrefix(src, "http") {
			add(src)
		}
	})
	// full-size URLs hide in the embedded JSON blobs
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		for _, m := range imgURLRe.FindAllStringSubmatch(sel.Text(), -1) {
			if len(m) > 1 {
				add(m[1])
			}
		}
	})

	if len(images) == 0 {
		return nil, fmt.Errorf("no images found")
	}
	return images, nil
}
