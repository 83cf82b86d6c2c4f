package crawler

import (
	"context"
	"io"
)

// Badge classifies a product card's rocket delivery badge. A card carries at
// most one badge; resolution is priority ordered (see badgeRules).
type Badge int

const (
	BadgeNone Badge = iota
	BadgeRocketDelivery
	BadgeRocketFresh
	BadgeRocketInstall
	BadgeRocketOverseas
	BadgeRocketMerchant
)

var badgeLabels = map[Badge]string{
	BadgeNone:           "",
	BadgeRocketDelivery: "로켓배송",
	BadgeRocketFresh:    "로켓프레시",
	BadgeRocketInstall:  "로켓설치",
	BadgeRocketOverseas: "로켓직구",
	BadgeRocketMerchant: "판매자로켓",
}

// Label returns the badge's display label as it appears in output rows
func (b Badge) Label() string {
	return badgeLabels[b]
}

// StockStatus reflects the stock warning text on a product card
type StockStatus int

const (
	StockNormal StockStatus = iota
	StockLow
	StockOut
)

var stockLabels = map[StockStatus]string{
	StockNormal: "",
	StockLow:    "품절임박",
	StockOut:    "품절",
}

// Label returns the stock status display label
func (s StockStatus) Label() string {
	return stockLabels[s]
}

// ProductRecord is the resolved output of one search-result card.
// Price, rank, review and point fields keep the page's string form
// ("" = absent); the aggregator coerces digits when summing.
type ProductRecord struct {
	Rank          string      `json:"rank,omitempty"`
	Name          string      `json:"name"`
	OriginalPrice string      `json:"original_price,omitempty"`
	FinalPrice    string      `json:"final_price,omitempty"`
	Badge         Badge       `json:"-"`
	BadgeLabel    string      `json:"badge,omitempty"`
	Arrival       string      `json:"arrival,omitempty"`
	FreeShipping  bool        `json:"free_shipping"`
	ReviewCount   string      `json:"review_count,omitempty"`
	Points        string      `json:"points,omitempty"`
	StockStatus   StockStatus `json:"-"`
	StockLabel    string      `json:"stock_status,omitempty"`
	Link          string      `json:"link,omitempty"`
	ImageURL      string      `json:"image_url,omitempty"`
}

// KeywordSummary aggregates one keyword's qualifying records
type KeywordSummary struct {
	AverageFinalPrice  int
	RocketBadgeCount   int
	AverageReviewCount float64
	ItemCount          int
}

// KeywordResult is one keyword's completed batch, handed to the writer
type KeywordResult struct {
	Keyword string
	Records []ProductRecord
	Summary KeywordSummary
	Failed  bool
}

// DetailRecord is the resolved output of one product-detail page
type DetailRecord struct {
	Brand            string `json:"brand,omitempty"`
	Title            string `json:"title"`
	SalePrice        string `json:"sale_price,omitempty"`
	CouponPrice      string `json:"coupon_price,omitempty"`
	Seller           string `json:"seller,omitempty"`
	OtherSellerCount string `json:"other_seller_count,omitempty"`
	Option           string `json:"option,omitempty"`
	Description      string `json:"description,omitempty"`
	URL              string `json:"url"`
}

// Fetcher retrieves raw HTML for a URL. Implemented by the unlocker client;
// failures surface as network-typed CrawlerErrors after retry exhaustion.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.Reader, error)
}
