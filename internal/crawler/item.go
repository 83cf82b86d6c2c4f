package crawler

import (
	"github.com/PuerkitoBio/goquery"
)

// extractItem resolves every field of one product card. It returns false
// when the card carries no price signal at all: such cards (refurbished
// placeholders, ad shells) are skipped entirely rather than recorded with
// empty prices.
//
// Every resolver tolerates missing sub-elements; a selector miss yields an
// empty field, never an error.
func extractItem(item *goquery.Selection, baseURL string) (ProductRecord, bool) {
	original, final := resolvePrices(item)
	if original == "" && final == "" {
		return ProductRecord{}, false
	}

	link, href := resolveLink(item, baseURL)
	cardText := joinedText(item)
	badge := resolveBadge(item)
	stock := resolveStockStatus(cardText)

	record := ProductRecord{
		Rank:          resolveRank(item, href),
		Name:          resolveName(item),
		OriginalPrice: original,
		FinalPrice:    final,
		Badge:         badge,
		BadgeLabel:    badge.Label(),
		Arrival:       resolveArrival(item, cardText),
		FreeShipping:  resolveFreeShipping(cardText),
		ReviewCount:   resolveReviewCount(item),
		Points:        resolvePoints(item),
		StockStatus:   stock,
		StockLabel:    stock.Label(),
		Link:          link,
		ImageURL:      resolveImage(item),
	}

	return record, true
}
