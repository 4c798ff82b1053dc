package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	report := &Report{Period: PeriodWeek, TotalRevenue: 42000}

	_, ok := c.Get(1, PeriodWeek)
	assert.False(t, ok)

	c.Set(1, PeriodWeek, report)

	got, ok := c.Get(1, PeriodWeek)
	require.True(t, ok)
	assert.Equal(t, report, got)

	// Same user, different period is a different key
	_, ok = c.Get(1, PeriodMonth)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	c.Set(1, PeriodWeek, &Report{Period: PeriodWeek})

	// Age the entry past the TTL
	c.mu.Lock()
	key := cacheKey(1, PeriodWeek)
	entry := c.entries[key]
	entry.storedAt = time.Now().Add(-CacheTTL - time.Second)
	c.entries[key] = entry
	c.mu.Unlock()

	_, ok := c.Get(1, PeriodWeek)
	assert.False(t, ok)
}

func TestMemoryCacheEvictsOldestWhenFull(t *testing.T) {
	c := NewMemoryCache()

	for i := 0; i < memoryCacheCap; i++ {
		c.Set(uint(i), PeriodYear, &Report{Period: fmt.Sprintf("r%d", i)})
	}

	_, ok := c.Get(0, PeriodYear)
	require.True(t, ok)

	// One more insert pushes out the oldest entry only
	c.Set(uint(memoryCacheCap), PeriodYear, &Report{})

	_, ok = c.Get(0, PeriodYear)
	assert.False(t, ok)
	_, ok = c.Get(1, PeriodYear)
	assert.True(t, ok)
	_, ok = c.Get(uint(memoryCacheCap), PeriodYear)
	assert.True(t, ok)
}

func TestMemoryCacheOverwriteDoesNotGrowOrder(t *testing.T) {
	c := NewMemoryCache()
	c.Set(1, PeriodWeek, &Report{TotalRevenue: 1})
	c.Set(1, PeriodWeek, &Report{TotalRevenue: 2})

	got, ok := c.Get(1, PeriodWeek)
	require.True(t, ok)
	assert.Equal(t, 2.0, got.TotalRevenue)
	assert.Len(t, c.order, 1)
}
