// Package goquery implements HTML helpers using goquery: page title
// extraction and recovery of the plain text of a message.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rulesbot"
)

// Ensure TitleFetcher implements rulesbot.TitleFetcher at compile time.
var _ rulesbot.TitleFetcher = (*TitleFetcher)(nil)

// TitleFetcher fetches pages and returns their <title>.
type TitleFetcher struct {
	fetcher rulesbot.Fetcher
}

// NewTitleFetcher creates a TitleFetcher that downloads pages with fetcher.
func NewTitleFetcher(fetcher rulesbot.Fetcher) *TitleFetcher {
	return &TitleFetcher{fetcher: fetcher}
}

// FetchTitle returns the trimmed document title of the page at url.
func (f *TitleFetcher) FetchTitle(ctx context.Context, url string) (string, error) {
	html, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return ExtractTitle(html)
}

// ExtractTitle returns the text of the first <title> element.
// Returns ENOTFOUND if there is none or it is blank.
func ExtractTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", rulesbot.Errorf(rulesbot.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", rulesbot.Errorf(rulesbot.ENOTFOUND, "page has no title")
	}
	return title, nil
}
