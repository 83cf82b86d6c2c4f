package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hakyeong/rocketcrawler/internal/crawler"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestResultWriterRowsAndColumns(t *testing.T) {
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, "results.csv")
	summaryPath := filepath.Join(dir, "summary.csv")

	w, err := NewResultWriter(resultsPath, summaryPath)
	require.NoError(t, err)

	res := crawler.KeywordResult{
		Keyword: "헤어핀",
		Records: []crawler.ProductRecord{
			{
				Rank:          "1",
				Name:          "진주 헤어핀",
				OriginalPrice: "10,000원",
				FinalPrice:    "8,000원",
				Badge:         crawler.BadgeRocketDelivery,
				Arrival:       "내일(화) 도착 보장",
				FreeShipping:  true,
				ReviewCount:   "123",
				Points:        "80원",
				StockStatus:   crawler.StockLow,
				Link:          "https://www.coupang.com/vp/products/1",
				ImageURL:      "https://img.example/700x700ex/a.jpg",
			},
			{
				Name:       "무배지 상품",
				FinalPrice: "5,000원",
			},
		},
		Summary: crawler.KeywordSummary{
			AverageFinalPrice:  6500,
			RocketBadgeCount:   1,
			AverageReviewCount: 61.5,
			ItemCount:          2,
		},
	}

	require.NoError(t, w.WriteKeywordResult(res))
	require.NoError(t, w.Close())

	rows := readCSV(t, resultsPath)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"키워드", "순위", "상품명", "원가", "최종가격",
		"로켓배지", "도착일", "무료배송", "리뷰수", "포인트",
		"재고현황", "링크", "이미지URL",
	}, rows[0])
	assert.Equal(t, []string{
		"헤어핀", "1", "진주 헤어핀", "10,000원", "8,000원",
		"로켓배송", "내일(화) 도착 보장", "Y", "123", "80원",
		"품절임박", "https://www.coupang.com/vp/products/1", "https://img.example/700x700ex/a.jpg",
	}, rows[1])
	assert.Equal(t, "N", rows[2][7], "records without free shipping write N")
	assert.Equal(t, "", rows[2][5], "no badge writes an empty label")

	summaryRows := readCSV(t, summaryPath)
	require.Len(t, summaryRows, 2)
	assert.Equal(t, []string{"키워드", "평균최종가격", "로켓배지개수", "평균리뷰수", "상품개수"}, summaryRows[0])
	assert.Equal(t, []string{"헤어핀", "6500", "1", "61.50", "2"}, summaryRows[1])
}

func TestResultWriterSentinelRow(t *testing.T) {
	dir := t.TempDir()
	w, err := NewResultWriter(filepath.Join(dir, "r.csv"), filepath.Join(dir, "s.csv"))
	require.NoError(t, err)

	require.NoError(t, w.WriteKeywordResult(crawler.FailedResult("없는키워드")))
	require.NoError(t, w.Close())

	rows := readCSV(t, filepath.Join(dir, "r.csv"))
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "없는키워드", row[0])
	assert.Equal(t, crawler.FetchFailedName, row[2])
	for i, field := range row[3:] {
		assert.Empty(t, field, "sentinel field %d should be empty", i+3)
	}
	assert.Empty(t, row[1], "sentinel rank should be empty")

	summaryRows := readCSV(t, filepath.Join(dir, "s.csv"))
	require.Len(t, summaryRows, 2)
	assert.Equal(t, []string{"없는키워드", "0", "0", "0.00", "0"}, summaryRows[1])
}

func TestDetailWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "detail.csv")

	w, err := NewDetailWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteDetailRecord(crawler.DetailRecord{
		Title:            "무선 청소기",
		SalePrice:        "189,000원",
		Seller:           "쿠팡",
		OtherSellerCount: "3",
		Option:           "색상: 화이트",
		Description:      "무선, 2년 보증",
		URL:              "https://www.coupang.com/vp/products/2",
	}))
	require.NoError(t, w.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"브랜드", "제품명", "현재 판매가", "회원 할인가", "판매자",
		"다른 판매자", "옵션", "상세정보", "URL",
	}, rows[0])
	assert.Equal(t, []string{
		"", "무선 청소기", "189,000원", "", "쿠팡",
		"3", "색상: 화이트", "무선, 2년 보증", "https://www.coupang.com/vp/products/2",
	}, rows[1])
}
