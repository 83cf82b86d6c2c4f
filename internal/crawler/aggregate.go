package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

// FetchFailedName is the sentinel record name written when a keyword's
// fetch failed after all retries
const FetchFailedName = "데이터를 못 받아 왔습니다"

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// coerceInt strips every non-digit character and parses what remains;
// empty or unparsable strings count as 0
func coerceInt(s string) int {
	digits := nonDigitRe.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Summarize derives one keyword's summary from its qualifying records.
// Zero records yield an all-zero summary.
func Summarize(records []ProductRecord) KeywordSummary {
	summary := KeywordSummary{ItemCount: len(records)}
	if summary.ItemCount == 0 {
		return summary
	}

	var priceSum, reviewSum int
	for _, r := range records {
		priceSum += coerceInt(r.FinalPrice)
		reviewSum += coerceInt(r.ReviewCount)
		if strings.Contains(r.Badge.Label(), "로켓") {
			summary.RocketBadgeCount++
		}
	}

	summary.AverageFinalPrice = priceSum / summary.ItemCount
	summary.AverageReviewCount = float64(reviewSum) / float64(summary.ItemCount)
	return summary
}

// NewKeywordResult bundles records and their summary into a completed batch
func NewKeywordResult(keyword string, records []ProductRecord) KeywordResult {
	return KeywordResult{
		Keyword: keyword,
		Records: records,
		Summary: Summarize(records),
	}
}

// FailedResult substitutes a single sentinel record and an all-zero summary
// for a keyword whose fetch failed entirely
func FailedResult(keyword string) KeywordResult {
	return KeywordResult{
		Keyword: keyword,
		Records: []ProductRecord{{Name: FetchFailedName}},
		Summary: KeywordSummary{},
		Failed:  true,
	}
}
