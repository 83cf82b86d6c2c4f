package crawler

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hakyeong/rocketcrawler/logger"
	"hakyeong/rocketcrawler/pkg/errors"
)

const (
	detailScopeSelector       = ".prod-atf-contents"
	detailTitleSelector       = "h1.product-title span"
	detailTitleFallback       = ".product-title, h1"
	detailPriceSelector       = ".final-price-amount"
	detailSellerSelector      = ".seller-info a"
	detailOptionSelector      = ".option-picker-container"
	detailDescriptionSelector = ".product-description li"
)

var otherSellersRe = regexp.MustCompile(`새\s*상품\s*\((\d+)\)`)

// DetailCrawler extracts structured fields from a product-detail page.
// It shares the fetch path with the search crawler; only the resolvers and
// the output schema differ.
type DetailCrawler struct {
	fetcher Fetcher
	log     *logger.Logger
}

// NewDetailCrawler creates a detail-page crawler
func NewDetailCrawler(fetcher Fetcher) *DetailCrawler {
	return &DetailCrawler{
		fetcher: fetcher,
		log:     logger.ForCrawler("detail"),
	}
}

// Scrape fetches one product page and resolves its fields. Extraction is
// scoped to the above-the-fold container when present; the description may
// live outside it and is searched in the full document as a fallback.
func (c *DetailCrawler) Scrape(ctx context.Context, pageURL string) (DetailRecord, error) {
	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return DetailRecord{}, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return DetailRecord{}, errors.NewParsing(pageURL, "detail page parse failed", err)
	}

	return c.ExtractDetail(doc, pageURL), nil
}

// ExtractDetail resolves the detail fields of a parsed product page
func (c *DetailCrawler) ExtractDetail(doc *goquery.Document, pageURL string) DetailRecord {
	scope := doc.Selection
	if scoped := doc.Find(detailScopeSelector).First(); scoped.Length() > 0 {
		scope = scoped
	}

	record := DetailRecord{
		Title:       resolveDetailTitle(scope),
		SalePrice:   strings.TrimSpace(scope.Find(detailPriceSelector).First().Text()),
		Seller:      strings.TrimSpace(scope.Find(detailSellerSelector).First().Text()),
		Option:      resolveDetailOption(scope),
		Description: resolveDetailDescription(scope, doc),
		URL:         pageURL,
	}

	if m := otherSellersRe.FindStringSubmatch(joinedText(scope)); m != nil {
		record.OtherSellerCount = m[1]
	}

	c.log.Debug().
		Str("url", pageURL).
		Str("title", record.Title).
		Msg("detail page extracted")

	return record
}

func resolveDetailTitle(scope *goquery.Selection) string {
	node := scope.Find(detailTitleSelector).First()
	if node.Length() == 0 {
		node = scope.Find(detailTitleFallback).First()
	}
	return strings.TrimSpace(node.Text())
}

// resolveDetailOption reads the first name/value span pair of the option
// picker and renders it as "name: value"
func resolveDetailOption(scope *goquery.Selection) string {
	container := scope.Find(detailOptionSelector).First()
	if container.Length() == 0 {
		return ""
	}

	spans := container.Find("span")
	if spans.Length() < 2 {
		return ""
	}

	key := strings.TrimSuffix(strings.TrimSpace(spans.Eq(0).Text()), ":")
	val := strings.TrimSpace(spans.Eq(1).Text())
	if key == "" || val == "" {
		return ""
	}
	return key + ": " + val
}

func resolveDetailDescription(scope *goquery.Selection, doc *goquery.Document) string {
	items := scope.Find(detailDescriptionSelector)
	if items.Length() == 0 {
		items = doc.Find(detailDescriptionSelector)
	}

	var parts []string
	items.Each(func(_ int, li *goquery.Selection) {
		parts = append(parts, strings.TrimSpace(li.Text()))
	})
	return strings.Join(parts, ", ")
}
