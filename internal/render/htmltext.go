package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FlattenHTML reduces an HTML fragment to readable plain text. Event and
// place descriptions arrive as markup from the backend's CMS; terminal and
// Telegram output want text only.
func FlattenHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<>") {
		return collapseWhitespace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		// Unparseable markup falls back to the raw text.
		return collapseWhitespace(fragment)
	}

	doc.Find("script, style, iframe").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
