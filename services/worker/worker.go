package worker

import (
	"context"
	"sync"
	"time"

	"hakyeong/rocketcrawler/internal/crawler"
)

// Pool runs jobs on a fixed number of goroutines with a fixed delay before
// each job, spacing out requests to the unlocking API. There is no mid-job
// cancellation: a started job runs to completion and shutdown waits for all
// in-flight jobs.
type Pool struct {
	concurrency int
	delay       time.Duration
}

// NewPool creates a worker pool
func NewPool(concurrency int, delay time.Duration) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{concurrency: concurrency, delay: delay}
}

// Run processes every job and blocks until all are done. A canceled context
// stops new jobs from starting; running jobs finish.
func (p *Pool) Run(ctx context.Context, jobs []string, run func(ctx context.Context, job string)) {
	jobChan := make(chan string, len(jobs))
	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				if ctx.Err() != nil {
					return
				}
				if p.delay > 0 {
					time.Sleep(p.delay)
				}
				run(ctx, job)
			}
		}()
	}
	wg.Wait()
}

// ResultSink receives completed keyword batches. Implemented by the CSV
// result writer; called only from the single consumer goroutine.
type ResultSink interface {
	WriteKeywordResult(res crawler.KeywordResult) error
}

// DetailSink receives completed product-detail records
type DetailSink interface {
	WriteDetailRecord(r crawler.DetailRecord) error
}

// Searcher is the keyword-crawling contract consumed by SearchRunner
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]crawler.ProductRecord, error)
}

// DetailScraper is the product-page contract consumed by DetailRunner
type DetailScraper interface {
	Scrape(ctx context.Context, pageURL string) (crawler.DetailRecord, error)
}

var _ Searcher = (*crawler.SearchCrawler)(nil)
var _ DetailScraper = (*crawler.DetailCrawler)(nil)
