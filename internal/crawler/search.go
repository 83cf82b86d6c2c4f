package crawler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"hakyeong/rocketcrawler/logger"
	"hakyeong/rocketcrawler/pkg/errors"
)

// MaxRecords caps how many qualifying records one search page may yield
const MaxRecords = 36

// SearchCrawler turns one keyword into a sequence of ProductRecords by
// fetching the search-results page through the unlocker and running the
// extraction cascade over each product card.
type SearchCrawler struct {
	fetcher  Fetcher
	baseURL  string
	listSize int
	log      *logger.Logger
}

// NewSearchCrawler creates a search crawler
func NewSearchCrawler(fetcher Fetcher, baseURL string, listSize int) *SearchCrawler {
	if listSize <= 0 {
		listSize = MaxRecords
	}
	return &SearchCrawler{
		fetcher:  fetcher,
		baseURL:  baseURL,
		listSize: listSize,
		log:      logger.ForCrawler("search"),
	}
}

// SearchURL builds the search-results URL for a keyword
func (c *SearchCrawler) SearchURL(keyword string) string {
	return fmt.Sprintf("%s/np/search?component=&q=%s&page=1&listSize=%d",
		c.baseURL, url.QueryEscape(keyword), c.listSize)
}

// Search fetches and extracts one keyword's search results. A page with no
// recognizable product cards yields an empty slice, not an error; only a
// fetch failure or unparsable body errors out.
func (c *SearchCrawler) Search(ctx context.Context, keyword string) ([]ProductRecord, error) {
	body, err := c.fetcher.Fetch(ctx, c.SearchURL(keyword))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing(keyword, "search page parse failed", err)
	}

	records := c.ExtractRecords(doc)
	c.log.Debug().
		Str("keyword", keyword).
		Int("records", len(records)).
		Msg("search page extracted")

	return records, nil
}

// ExtractRecords runs the item extractor over every product card of a
// parsed search-results document, in document order, up to MaxRecords
func (c *SearchCrawler) ExtractRecords(doc *goquery.Document) []ProductRecord {
	var records []ProductRecord
	SelectItems(doc).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		record, ok := extractItem(item, c.baseURL)
		if ok {
			records = append(records, record)
		}
		return len(records) < MaxRecords
	})
	return records
}
