package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hakyeong/rocketcrawler/config"
	"hakyeong/rocketcrawler/internal/crawler"
	"hakyeong/rocketcrawler/logger"
	"hakyeong/rocketcrawler/services/cache"
	"hakyeong/rocketcrawler/services/keywords"
	"hakyeong/rocketcrawler/services/publisher"
	"hakyeong/rocketcrawler/services/unlocker"
	"hakyeong/rocketcrawler/services/worker"
	"hakyeong/rocketcrawler/services/writer"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	mode := flag.String("mode", "search", "run mode: search or detail")
	input := flag.String("input", "", "keyword CSV path (overrides INPUT_FILE)")
	keyword := flag.String("keyword", "", "single keyword for detail mode")
	limit := flag.Int("limit", 0, "maximum keywords to crawl (0 = all)")
	flag.Parse()

	// Load and validate configuration
	cfg := config.LoadConfig()
	if *input != "" {
		cfg.InputFile = *input
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("mode", *mode).
		Int("workers", cfg.WorkerCount).
		Msg("Starting crawler")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
	}()

	// Optional HTML cache
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Memcache enabled")
	}

	fetcher := unlocker.NewClient(&cfg, cacheSvc)
	pool := worker.NewPool(cfg.WorkerCount, cfg.RequestDelay)

	start := time.Now()
	switch *mode {
	case "search":
		runSearch(ctx, &cfg, fetcher, pool, *limit)
	case "detail":
		runDetail(ctx, &cfg, fetcher, pool, *keyword)
	default:
		log.Fatal().Str("mode", *mode).Msg("Unknown mode")
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Msg("Done")
}

// runSearch crawls every keyword from the input CSV and writes the result and
// summary files next to it.
func runSearch(ctx context.Context, cfg *config.Config, fetcher crawler.Fetcher, pool *worker.Pool, limit int) {
	log := logger.Default

	if cfg.InputFile == "" {
		log.Fatal().Msg("Search mode requires -input or INPUT_CSV_FILE")
	}

	kws, err := keywords.Load(cfg.InputPath(), limit)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.InputPath()).Msg("Failed to load keywords")
	}
	if len(kws) == 0 {
		log.Warn().Str("path", cfg.InputPath()).Msg("No keywords to crawl")
		return
	}
	log.Info().Int("keywords", len(kws)).Msg("Keywords loaded")

	sink, err := writer.NewResultWriter(cfg.ResultsPath(), cfg.SummaryPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open result files")
	}
	defer sink.Close()

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB,
			cfg.RedisStream, cfg.RedisStreamCount, cfg.RedisStreamMaxLength)
		defer redisPub.Close()
		pub = redisPub
		log.Info().Str("addr", cfg.RedisAddr).Msg("Redis publishing enabled")
	}

	searcher := crawler.NewSearchCrawler(fetcher, cfg.SearchBaseURL, cfg.ListSize)
	runner := worker.NewSearchRunner(pool, searcher, sink, pub)
	runner.Run(ctx, kws)

	log.Info().
		Str("results", cfg.ResultsPath()).
		Str("summary", cfg.SummaryPath()).
		Msg("Search crawl finished")
}

// runDetail searches a single keyword, then scrapes every result's product
// page into one detail file.
func runDetail(ctx context.Context, cfg *config.Config, fetcher crawler.Fetcher, pool *worker.Pool, keyword string) {
	log := logger.Default

	if keyword == "" {
		log.Fatal().Msg("Detail mode requires -keyword")
	}

	searcher := crawler.NewSearchCrawler(fetcher, cfg.SearchBaseURL, cfg.ListSize)
	records, err := searcher.Search(ctx, keyword)
	if err != nil {
		log.Fatal().Err(err).Str("keyword", keyword).Msg("Failed to search keyword")
	}

	var urls []string
	for _, rec := range records {
		if rec.Link != "" {
			urls = append(urls, rec.Link)
		}
	}
	if len(urls) == 0 {
		log.Warn().Str("keyword", keyword).Msg("No product links found")
		return
	}
	log.Info().Str("keyword", keyword).Int("pages", len(urls)).Msg("Product pages queued")

	sink, err := writer.NewDetailWriter(cfg.DetailPath(keyword))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open detail file")
	}
	defer sink.Close()

	runner := worker.NewDetailRunner(pool, crawler.NewDetailCrawler(fetcher), sink)
	runner.Run(ctx, urls)

	log.Info().Str("detail", cfg.DetailPath(keyword)).Msg("Detail crawl finished")
}
