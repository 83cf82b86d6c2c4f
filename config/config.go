package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hakyeong/rocketcrawler/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Unlocker API configuration
	UnlockerAPIURL  string
	UnlockerToken   string
	UnlockerZone    string
	UnlockerCountry string
	FetchTimeout    time.Duration
	FetchRetries    int
	FetchBackoff    time.Duration

	// Crawler configuration
	SearchBaseURL string
	ListSize      int
	WorkerCount   int
	RequestDelay  time.Duration

	// Input/output configuration
	BaseDir   string
	InputFile string

	// Memcache configuration (empty address disables the HTML cache)
	MemcacheAddr string
	CacheTTL     time.Duration

	// Redis configuration (empty address disables publishing)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	redisStreamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "30"))
	fetchRetries, _ := strconv.Atoi(getEnv("FETCH_RETRIES", "3"))
	fetchBackoff, _ := strconv.Atoi(getEnv("FETCH_BACKOFF_SECONDS", "5"))
	listSize, _ := strconv.Atoi(getEnv("SEARCH_LIST_SIZE", "36"))
	workerCount, _ := strconv.Atoi(getEnv("WORKER_COUNT", "4"))
	requestDelayMs, _ := strconv.Atoi(getEnv("REQUEST_DELAY_MS", "1500"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))

	return Config{
		UnlockerAPIURL:  getEnv("BRD_API_URL", "https://api.brightdata.com/request"),
		UnlockerToken:   getEnv("BRD_API_TOKEN", ""),
		UnlockerZone:    getEnv("BRD_ZONE", "web_unlocker"),
		UnlockerCountry: getEnv("BRD_COUNTRY", "kr"),
		FetchTimeout:    time.Duration(fetchTimeout) * time.Second,
		FetchRetries:    fetchRetries,
		FetchBackoff:    time.Duration(fetchBackoff) * time.Second,

		SearchBaseURL: getEnv("SEARCH_BASE_URL", "https://www.coupang.com"),
		ListSize:      listSize,
		WorkerCount:   workerCount,
		RequestDelay:  time.Duration(requestDelayMs) * time.Millisecond,

		BaseDir:   getEnv("CRAWLER_BASE_DIR", "."),
		InputFile: getEnv("INPUT_CSV_FILE", ""),

		MemcacheAddr: getEnv("MEMCACHE_ADDR", ""),
		CacheTTL:     time.Duration(cacheTTL) * time.Second,

		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "rocketsearch"),
		RedisStreamCount:     redisStreamCount,
		RedisStreamMaxLength: redisStreamMaxLen,

		Environment: getEnv("CRAWLER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.UnlockerToken == "" {
		return errors.NewConfiguration("BRD_API_TOKEN is required", nil)
	}
	if c.WorkerCount < 1 {
		return errors.NewConfiguration("WORKER_COUNT must be at least 1", nil)
	}
	if c.FetchRetries < 1 {
		return errors.NewConfiguration("FETCH_RETRIES must be at least 1", nil)
	}
	if c.ListSize < 1 {
		return errors.NewConfiguration("SEARCH_LIST_SIZE must be at least 1", nil)
	}
	return nil
}

// InputPath returns the absolute path of the keyword input CSV
func (c *Config) InputPath() string {
	return filepath.Join(c.BaseDir, c.InputFile)
}

// ResultsPath returns the output path for per-item result rows,
// derived from the input file name
func (c *Config) ResultsPath() string {
	return filepath.Join(c.BaseDir, c.inputBase()+"_rocket_results.csv")
}

// SummaryPath returns the output path for per-keyword summary rows
func (c *Config) SummaryPath() string {
	return filepath.Join(c.BaseDir, c.inputBase()+"_rocket_result_summary.csv")
}

// DetailPath returns the output path for product-detail rows in detail mode
func (c *Config) DetailPath(keyword string) string {
	return filepath.Join(c.BaseDir, "coupang_pdp_"+keyword+".csv")
}

func (c *Config) inputBase() string {
	base := c.InputFile
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	return base
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
