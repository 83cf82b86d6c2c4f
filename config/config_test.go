package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "https://api.brightdata.com/request", config.UnlockerAPIURL)
	assert.Equal(t, "kr", config.UnlockerCountry)
	assert.Equal(t, 30*time.Second, config.FetchTimeout)
	assert.Equal(t, 3, config.FetchRetries)
	assert.Equal(t, 5*time.Second, config.FetchBackoff)
	assert.Equal(t, 36, config.ListSize)
	assert.Equal(t, 4, config.WorkerCount)
	assert.Equal(t, 1500*time.Millisecond, config.RequestDelay)
	assert.Equal(t, "", config.RedisAddr)
	assert.Equal(t, "", config.MemcacheAddr)

	// Test with environment variables
	os.Setenv("BRD_API_TOKEN", "token123")
	os.Setenv("BRD_ZONE", "my_zone")
	os.Setenv("WORKER_COUNT", "8")
	os.Setenv("SEARCH_LIST_SIZE", "12")
	os.Setenv("REQUEST_DELAY_MS", "500")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")

	config = LoadConfig()
	assert.Equal(t, "token123", config.UnlockerToken)
	assert.Equal(t, "my_zone", config.UnlockerZone)
	assert.Equal(t, 8, config.WorkerCount)
	assert.Equal(t, 12, config.ListSize)
	assert.Equal(t, 500*time.Millisecond, config.RequestDelay)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)

	// Clean up
	os.Unsetenv("BRD_API_TOKEN")
	os.Unsetenv("BRD_ZONE")
	os.Unsetenv("WORKER_COUNT")
	os.Unsetenv("SEARCH_LIST_SIZE")
	os.Unsetenv("REQUEST_DELAY_MS")
	os.Unsetenv("REDIS_ADDR")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	config.UnlockerToken = ""
	assert.Error(t, config.Validate(), "missing token should fail validation")

	config.UnlockerToken = "token123"
	assert.NoError(t, config.Validate())

	config.WorkerCount = 0
	assert.Error(t, config.Validate(), "zero workers should fail validation")
}

func TestOutputPaths(t *testing.T) {
	config := Config{
		BaseDir:   "/data",
		InputFile: "Discovery_코트_20251111003804.csv",
	}

	assert.Equal(t, filepath.Join("/data", "Discovery_코트_20251111003804.csv"), config.InputPath())
	assert.Equal(t, filepath.Join("/data", "Discovery_코트_20251111003804_rocket_results.csv"), config.ResultsPath())
	assert.Equal(t, filepath.Join("/data", "Discovery_코트_20251111003804_rocket_result_summary.csv"), config.SummaryPath())
	assert.Equal(t, filepath.Join("/data", "coupang_pdp_코트.csv"), config.DetailPath("코트"))
}
