package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// VisibleText returns the text of an HTML message fragment that is not
// inside any markup entity. Links, code spans and formatted runs are
// dropped so that references inside them are not picked up again. The
// remaining text nodes are joined with single spaces.
func VisibleText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var parts []string
	doc.Find("body").Contents().Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node.Type == html.TextNode {
			parts = append(parts, node.Data)
		}
	})
	return strings.Join(parts, " "), nil
}
