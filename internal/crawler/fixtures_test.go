package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://www.coupang.com"

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// firstItem wraps a card fragment in the current-generation list markup and
// returns the selected card
func firstItem(t *testing.T, card string) *goquery.Selection {
	t.Helper()
	doc := mustDoc(t, `<div id="product-list">`+card+`</div>`)
	items := SelectItems(doc)
	require.Equal(t, 1, items.Length())
	return items.First()
}
