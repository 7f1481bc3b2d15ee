package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyIncludesExtractorKind(t *testing.T) {
	data := []byte("identical bytes")
	assert.NotEqual(t, CacheKey("audio", data), CacheKey("image", data))
	assert.Equal(t, CacheKey("audio", data), CacheKey("audio", []byte("identical bytes")))
}

func TestResultCachePutGet(t *testing.T) {
	c := NewResultCache(4)

	key := CacheKey("audio", []byte("recording"))
	_, found := c.Get(key)
	assert.False(t, found)

	c.Put(key, "transcript")
	got, found := c.Get(key)
	assert.True(t, found)
	assert.Equal(t, "transcript", got)
}

func TestResultCacheEvictsOldestFirst(t *testing.T) {
	c := NewResultCache(3)

	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("audio:%d", i), fmt.Sprintf("text-%d", i))
	}
	assert.Equal(t, 3, c.Len())

	// One past capacity: the first inserted entry goes, nothing else.
	c.Put("audio:3", "text-3")
	assert.Equal(t, 3, c.Len())

	_, found := c.Get("audio:0")
	assert.False(t, found)
	for i := 1; i <= 3; i++ {
		_, found := c.Get(fmt.Sprintf("audio:%d", i))
		assert.True(t, found, "entry %d should survive", i)
	}
}

func TestResultCacheUpdateDoesNotGrow(t *testing.T) {
	c := NewResultCache(2)
	c.Put("k1", "a")
	c.Put("k1", "b")
	assert.Equal(t, 1, c.Len())

	got, _ := c.Get("k1")
	assert.Equal(t, "b", got)
}
