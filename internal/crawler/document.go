package crawler

import (
	"github.com/PuerkitoBio/goquery"
)

// itemSelectors locates product cards in a search-results page. The first
// entry matches the current markup generation; the rest cover older
// generations and are tried in order only when the primary finds nothing.
var itemSelectors = []string{
	"#product-list .ProductUnit_productUnit__Qd6sv",
	"[class*=search-product]",
	".baby-product",
	".search-product-wrap",
	"li[class*=product]",
}

// SelectItems returns the product-card nodes of a search-results document.
// An empty selection means "no results"; it is not an error and is distinct
// from a fetch failure, which never reaches this point.
func SelectItems(doc *goquery.Document) *goquery.Selection {
	items := doc.Find(itemSelectors[0])
	for _, selector := range itemSelectors[1:] {
		if items.Length() > 0 {
			break
		}
		items = doc.Find(selector)
	}
	return items
}
