package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	nameSelector       = ".ProductUnit_productNameV2__cV9cw"
	legacyNameSelector = ".name"
	rankSelector       = "[class*=RankMark_rank]"
	thumbnailSelector  = ".search-product-wrap-img"
	ratingSelector     = ".ProductRating_ratingCount__R0Vhz"
	pointsSelector     = ".BenefitBadge_cash-benefit__SmkrN"
)

var (
	digitsRe   = regexp.MustCompile(`\d+`)
	rankHrefRe = regexp.MustCompile(`[?&]rank=(\d+)`)

	// The arrival estimate lives in a styled container whose class carries
	// a bracketed line-height token, unreachable with a plain CSS selector.
	arrivalClassRe  = regexp.MustCompile(`fw-leading-\[15px\]`)
	arrivalPhraseRe = regexp.MustCompile(`도착 예정|도착 보장`)
	arrivalTokenRe  = regexp.MustCompile(`([0-9]{1,2}/[0-9]{1,2}|모레\([^)]+\)|내일\([^)]+\)|[가-힣]+\([^)]+\))\s*도착\s*(예정|보장)`)
	arrivalBareRe   = regexp.MustCompile(`도착\s*예정|도착\s*보장`)

	reviewParenRe  = regexp.MustCompile(`\((\d+)\)`)
	reviewMarkupRe = regexp.MustCompile(`\([^)]*?(\d+)[^)]*?\)`)

	pointsRe = regexp.MustCompile(`([0-9][0-9,\.]+)\s*원\s*적립`)
)

// resolveName extracts the product name, empty when neither the current nor
// the legacy selector matches
func resolveName(item *goquery.Selection) string {
	node := item.Find(nameSelector).First()
	if node.Length() == 0 {
		node = item.Find(legacyNameSelector).First()
	}
	if node.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(node.Text())
}

// resolveLink returns the first anchor's href, absolutized against baseURL
// when relative
func resolveLink(item *goquery.Selection, baseURL string) (link, href string) {
	anchor := item.Find("a").First()
	if anchor.Length() == 0 {
		return "", ""
	}
	href = anchor.AttrOr("href", "")
	if href == "" {
		return "", ""
	}
	if strings.HasPrefix(href, "/") {
		return baseURL + href, href
	}
	return href, href
}

// resolveImage extracts the thumbnail URL, preferring the lazy-load
// attribute, and upgrades the embedded thumbnail size token
func resolveImage(item *goquery.Selection) string {
	thumb := item.Find(thumbnailSelector).First()
	if thumb.Length() == 0 {
		return ""
	}

	src := thumb.AttrOr("data-img-src", "")
	if src == "" {
		src = thumb.AttrOr("src", "")
	}
	if src == "" {
		return ""
	}

	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	return strings.ReplaceAll(src, "230x230ex", "700x700ex")
}

// resolveRank reads the rank marker's first integer, falling back to the
// rank query parameter of the card's link. "" means no rank was found.
func resolveRank(item *goquery.Selection, href string) string {
	if node := item.Find(rankSelector).First(); node.Length() > 0 {
		if rank := digitsRe.FindString(joinedText(node)); rank != "" {
			return rank
		}
	}
	if href != "" {
		if m := rankHrefRe.FindStringSubmatch(href); m != nil {
			return m[1]
		}
	}
	return ""
}

// resolveArrival extracts the arrival estimate text. Cascade: the styled
// arrival container, then the text node carrying the arrival phrasing, then
// a date-or-relative-day token search over the whole card text, then the
// bare phrasing.
func resolveArrival(item *goquery.Selection, cardText string) string {
	var arrival string
	item.Find("*[class]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !arrivalClassRe.MatchString(el.AttrOr("class", "")) {
			return true
		}
		text := joinedText(el)
		if strings.Contains(text, "도착 예정") || strings.Contains(text, "도착 보장") {
			arrival = text
			return false
		}
		return true
	})
	if arrival != "" {
		return arrival
	}

	if text := findTextParent(item, arrivalPhraseRe); text != "" {
		return text
	}

	if m := arrivalTokenRe.FindString(cardText); m != "" {
		return m
	}
	return arrivalBareRe.FindString(cardText)
}

// resolveReviewCount reads the rating element's parenthesized count. When
// interleaved nodes split the digits in the joined text, the raw markup is
// retried with a looser pattern; the last resort is the first integer in
// the element's text.
func resolveReviewCount(item *goquery.Selection) string {
	node := item.Find(ratingSelector).First()
	if node.Length() == 0 {
		return ""
	}

	text := joinedText(node)
	if m := reviewParenRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if markup, err := goquery.OuterHtml(node); err == nil {
		if m := reviewMarkupRe.FindStringSubmatch(markup); m != nil {
			return m[1]
		}
	}

	return digitsRe.FindString(text)
}

// resolvePoints extracts the cash-reward amount; the element's raw text is
// kept verbatim when the reward pattern does not match
func resolvePoints(item *goquery.Selection) string {
	node := item.Find(pointsSelector).First()
	if node.Length() == 0 {
		return ""
	}

	text := joinedText(node)
	if m := pointsRe.FindStringSubmatch(text); m != nil {
		return m[1] + "원"
	}
	return text
}

// resolveStockStatus checks the card text for stock warnings; 품절임박 takes
// priority over plain 품절
func resolveStockStatus(cardText string) StockStatus {
	if strings.Contains(cardText, "품절임박") {
		return StockLow
	}
	if strings.Contains(cardText, "품절") {
		return StockOut
	}
	return StockNormal
}

// resolveFreeShipping reports whether the card advertises free shipping
func resolveFreeShipping(cardText string) bool {
	return strings.Contains(cardText, "무료배송")
}
