package cache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211")

	_, err := mc.client.Get("probe")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	err = mc.Set("html:test_key", []byte("<html>cached</html>"), 1*time.Second)
	assert.NoError(t, err)

	value, err := mc.Get("html:test_key")
	assert.NoError(t, err)
	assert.Equal(t, "<html>cached</html>", string(value))

	err = mc.Delete("html:test_key")
	assert.NoError(t, err)

	_, err = mc.Get("html:test_key")
	assert.Error(t, err)
}
