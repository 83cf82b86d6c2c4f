package crawler

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

const (
	priceAreaSelector   = ".PriceArea_priceArea__NntJz"
	legacyPriceSelector = ".price-value"
)

var (
	// amountRe matches a currency amount with or without the 원 marker,
	// e.g. the content of a strikethrough original price
	amountRe = regexp.MustCompile(`([0-9][0-9,\.]+)\s*원?`)
	// wonAmountRe matches amounts carrying the 원 marker; used to pull every
	// amount out of the price region text
	wonAmountRe = regexp.MustCompile(`([0-9][0-9,\.]+)\s*원`)
)

// resolvePrices extracts the original (strikethrough) and final price of a
// card. The final price is the LAST 원-amount in the price region's text:
// the region lists the list price first and the discounted price after it.
// Cards without a price region fall back to the legacy price element.
func resolvePrices(item *goquery.Selection) (original, final string) {
	region := item.Find(priceAreaSelector).First()
	if region.Length() > 0 {
		if del := region.Find("del").First(); del.Length() > 0 {
			if m := amountRe.FindStringSubmatch(joinedText(del)); m != nil {
				original = m[1] + "원"
			}
		}

		if matches := wonAmountRe.FindAllStringSubmatch(joinedText(region), -1); len(matches) > 0 {
			final = matches[len(matches)-1][1] + "원"
		}

		if final == "" {
			final = legacyPrice(region)
		}
		return original, final
	}

	return "", legacyPrice(item)
}

func legacyPrice(scope *goquery.Selection) string {
	node := scope.Find(legacyPriceSelector).First()
	if node.Length() == 0 {
		return ""
	}
	if m := amountRe.FindStringSubmatch(joinedText(node)); m != nil {
		return m[1] + "원"
	}
	return ""
}
