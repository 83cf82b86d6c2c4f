package worker

import (
	"context"
	"encoding/json"

	"hakyeong/rocketcrawler/internal/crawler"
	"hakyeong/rocketcrawler/logger"
	"hakyeong/rocketcrawler/services/publisher"
)

// SearchRunner crawls keywords concurrently and hands every finished batch to
// a single consumer goroutine that owns the sink. Workers never touch the CSV
// files directly, so the writer needs no locking.
type SearchRunner struct {
	pool    *Pool
	crawler Searcher
	sink    ResultSink
	pub     publisher.Publisher
	log     *logger.Logger
}

// NewSearchRunner creates a search runner. pub may be nil when stream
// publishing is disabled.
func NewSearchRunner(pool *Pool, c Searcher, sink ResultSink, pub publisher.Publisher) *SearchRunner {
	return &SearchRunner{
		pool:    pool,
		crawler: c,
		sink:    sink,
		pub:     pub,
		log:     logger.ForWorker(),
	}
}

// Run processes all keywords and blocks until every result has been written.
// A failed keyword becomes a sentinel batch; it never aborts the others.
func (r *SearchRunner) Run(ctx context.Context, keywords []string) {
	results := make(chan crawler.KeywordResult, len(keywords))
	done := make(chan struct{})

	go func() {
		defer close(done)
		for res := range results {
			r.consume(res)
		}
	}()

	r.pool.Run(ctx, keywords, func(ctx context.Context, keyword string) {
		results <- r.searchOne(ctx, keyword)
	})
	close(results)
	<-done

	if r.pub != nil {
		if err := r.pub.TrimStreams(); err != nil {
			logger.LogError("worker", err, "Failed to trim streams")
		}
	}
}

func (r *SearchRunner) searchOne(ctx context.Context, keyword string) crawler.KeywordResult {
	records, err := r.crawler.Search(ctx, keyword)
	if err != nil {
		logger.LogError("worker", err, "Failed to crawl keyword %s", keyword)
		return crawler.FailedResult(keyword)
	}

	r.log.Info().
		Str("keyword", keyword).
		Int("count", len(records)).
		Msg("Keyword crawled")

	return crawler.NewKeywordResult(keyword, records)
}

func (r *SearchRunner) consume(res crawler.KeywordResult) {
	if err := r.sink.WriteKeywordResult(res); err != nil {
		logger.LogError("worker", err, "Failed to write results for %s", res.Keyword)
	}

	if r.pub == nil || res.Failed {
		return
	}
	for _, rec := range res.Records {
		payload, err := json.Marshal(rec)
		if err != nil {
			logger.LogError("worker", err, "Failed to encode record for %s", res.Keyword)
			continue
		}
		if err := r.pub.Publish(res.Keyword, payload); err != nil {
			logger.LogError("worker", err, "Failed to publish record for %s", res.Keyword)
		}
	}
}

// DetailRunner crawls product pages concurrently. Pages that fail to fetch or
// parse are logged and skipped; nothing is written for them.
type DetailRunner struct {
	pool    *Pool
	scraper DetailScraper
	sink    DetailSink
	log     *logger.Logger
}

// NewDetailRunner creates a detail runner
func NewDetailRunner(pool *Pool, s DetailScraper, sink DetailSink) *DetailRunner {
	return &DetailRunner{
		pool:    pool,
		scraper: s,
		sink:    sink,
		log:     logger.ForWorker(),
	}
}

// Run processes all product page URLs and blocks until every record has been
// written
func (r *DetailRunner) Run(ctx context.Context, urls []string) {
	results := make(chan crawler.DetailRecord, len(urls))
	done := make(chan struct{})

	go func() {
		defer close(done)
		for rec := range results {
			if err := r.sink.WriteDetailRecord(rec); err != nil {
				logger.LogError("worker", err, "Failed to write detail record for %s", rec.URL)
			}
		}
	}()

	r.pool.Run(ctx, urls, func(ctx context.Context, pageURL string) {
		rec, err := r.scraper.Scrape(ctx, pageURL)
		if err != nil {
			logger.LogError("worker", err, "Failed to crawl product page %s", pageURL)
			return
		}
		results <- rec
	})
	close(results)
	<-done
}
