package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"hakyeong/rocketcrawler/internal/crawler"
	"hakyeong/rocketcrawler/logger"
)

// Column order in both files is a contract with downstream consumers
var (
	resultsHeader = []string{
		"키워드", "순위", "상품명", "원가", "최종가격",
		"로켓배지", "도착일", "무료배송", "리뷰수", "포인트",
		"재고현황", "링크", "이미지URL",
	}
	summaryHeader = []string{
		"키워드", "평균최종가격", "로켓배지개수", "평균리뷰수", "상품개수",
	}
	detailHeader = []string{
		"브랜드", "제품명", "현재 판매가", "회원 할인가", "판매자",
		"다른 판매자", "옵션", "상세정보", "URL",
	}
)

// ResultWriter appends result and summary rows for completed keyword
// batches. It is owned by a single consumer goroutine; workers hand their
// batches over a channel instead of sharing the files under a lock.
type ResultWriter struct {
	resultsFile *os.File
	summaryFile *os.File
	results     *csv.Writer
	summary     *csv.Writer
	log         *logger.Logger
}

// NewResultWriter creates both output files and writes their headers
func NewResultWriter(resultsPath, summaryPath string) (*ResultWriter, error) {
	resultsFile, err := os.Create(resultsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}

	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		resultsFile.Close()
		return nil, fmt.Errorf("failed to create summary file: %w", err)
	}

	w := &ResultWriter{
		resultsFile: resultsFile,
		summaryFile: summaryFile,
		results:     csv.NewWriter(resultsFile),
		summary:     csv.NewWriter(summaryFile),
		log:         logger.ForWriter(),
	}

	if err := w.results.Write(resultsHeader); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write results header: %w", err)
	}
	if err := w.summary.Write(summaryHeader); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write summary header: %w", err)
	}
	w.results.Flush()
	w.summary.Flush()

	return w, nil
}

// WriteKeywordResult appends one keyword's record rows and its summary row,
// flushing both files so partial runs remain usable
func (w *ResultWriter) WriteKeywordResult(res crawler.KeywordResult) error {
	for _, record := range res.Records {
		if err := w.results.Write(resultRow(res.Keyword, record, res.Failed)); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}

	if err := w.summary.Write(summaryRow(res.Keyword, res.Summary)); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}

	w.results.Flush()
	w.summary.Flush()
	if err := w.results.Error(); err != nil {
		return err
	}
	if err := w.summary.Error(); err != nil {
		return err
	}

	w.log.Debug().
		Str("keyword", res.Keyword).
		Int("records", len(res.Records)).
		Bool("failed", res.Failed).
		Msg("batch written")

	return nil
}

// Close flushes and closes both files
func (w *ResultWriter) Close() error {
	w.results.Flush()
	w.summary.Flush()
	err := w.resultsFile.Close()
	if err2 := w.summaryFile.Close(); err == nil {
		err = err2
	}
	return err
}

func resultRow(keyword string, r crawler.ProductRecord, failed bool) []string {
	// Sentinel rows keep every field empty, including the Y/N column
	freeShipping := ""
	if !failed {
		freeShipping = "N"
		if r.FreeShipping {
			freeShipping = "Y"
		}
	}

	return []string{
		keyword,
		r.Rank,
		r.Name,
		r.OriginalPrice,
		r.FinalPrice,
		r.Badge.Label(),
		r.Arrival,
		freeShipping,
		r.ReviewCount,
		r.Points,
		r.StockStatus.Label(),
		r.Link,
		r.ImageURL,
	}
}

func summaryRow(keyword string, s crawler.KeywordSummary) []string {
	return []string{
		keyword,
		strconv.Itoa(s.AverageFinalPrice),
		strconv.Itoa(s.RocketBadgeCount),
		fmt.Sprintf("%.2f", s.AverageReviewCount),
		strconv.Itoa(s.ItemCount),
	}
}

// DetailWriter appends product-detail rows; same single-consumer ownership
// as ResultWriter
type DetailWriter struct {
	file *os.File
	csv  *csv.Writer
	log  *logger.Logger
}

// NewDetailWriter creates the detail output file and writes its header
func NewDetailWriter(path string) (*DetailWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create detail file: %w", err)
	}

	w := &DetailWriter{
		file: file,
		csv:  csv.NewWriter(file),
		log:  logger.ForWriter(),
	}

	if err := w.csv.Write(detailHeader); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write detail header: %w", err)
	}
	w.csv.Flush()

	return w, nil
}

// WriteDetailRecord appends one product-detail row and flushes
func (w *DetailWriter) WriteDetailRecord(r crawler.DetailRecord) error {
	row := []string{
		r.Brand,
		r.Title,
		r.SalePrice,
		r.CouponPrice,
		r.Seller,
		r.OtherSellerCount,
		r.Option,
		r.Description,
		r.URL,
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write detail row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the detail file
func (w *DetailWriter) Close() error {
	w.csv.Flush()
	return w.file.Close()
}
