package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheEvictionOrder(t *testing.T) {
	type op struct {
		kind string // put or get
		key  string
	}
	type testcase struct {
		name     string
		capacity int
		ops      []op
		present  []string
		evicted  []string
	}
	for _, tc := range []testcase{
		{
			name:     "recently read key survives eviction",
			capacity: 2,
			ops: []op{
				{"put", "a"},
				{"put", "b"},
				{"get", "a"},
				{"put", "c"},
			},
			present: []string{"a", "c"},
			evicted: []string{"b"},
		},
		{
			name:     "oldest insertion evicted when nothing is read",
			capacity: 2,
			ops: []op{
				{"put", "a"},
				{"put", "b"},
				{"put", "c"},
			},
			present: []string{"b", "c"},
			evicted: []string{"a"},
		},
		{
			name:     "overwrite refreshes recency instead of growing",
			capacity: 2,
			ops: []op{
				{"put", "a"},
				{"put", "b"},
				{"put", "a"},
				{"put", "c"},
			},
			present: []string{"a", "c"},
			evicted: []string{"b"},
		},
		{
			name:     "under capacity nothing is evicted",
			capacity: 3,
			ops: []op{
				{"put", "a"},
				{"put", "b"},
			},
			present: []string{"a", "b"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := New[string, int](tc.capacity)
			for i, o := range tc.ops {
				switch o.kind {
				case "put":
					c.Put(o.key, i)
				case "get":
					c.Get(o.key)
				}
				if got := c.Len(); got > tc.capacity {
					t.Errorf("after op %d cache holds %d entries, capacity is %d", i, got, tc.capacity)
				}
			}
			for _, key := range tc.present {
				if _, ok := c.Get(key); !ok {
					t.Errorf("expected %q to be cached, got a miss", key)
				}
			}
			for _, key := range tc.evicted {
				if _, ok := c.Get(key); ok {
					t.Errorf("expected %q to be evicted, got a hit", key)
				}
			}
		})
	}
}

func TestCacheBoundHolds(t *testing.T) {
	const capacity = 10
	c := New[string, int](capacity)
	for i := 0; i < 100; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
		if got := c.Len(); got > capacity {
			t.Fatalf("after %d puts cache holds %d entries, capacity is %d", i+1, got, capacity)
		}
	}
	if got := c.Len(); got != capacity {
		t.Errorf("expected a full cache of %d entries, got %d", capacity, got)
	}
}

func TestCacheGetIsStable(t *testing.T) {
	c := New[string, string](2)
	c.Put("icon", "decoded")
	first, ok := c.Get("icon")
	if !ok {
		t.Fatal("expected a hit for a freshly inserted key")
	}
	second, ok := c.Get("icon")
	if !ok {
		t.Fatal("expected a repeated hit for the same key")
	}
	if first != second {
		t.Errorf("expected both reads to return the same value, got %q then %q", first, second)
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](4)
	for i := 0; i < 4; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Errorf("expected an empty cache after clear, got %d entries", got)
	}
	if _, ok := c.Get("key-0"); ok {
		t.Error("expected a miss after clear, got a hit")
	}
	c.Put("key-9", 9)
	if _, ok := c.Get("key-9"); !ok {
		t.Error("expected the cache to accept entries again after clear")
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < DefaultCapacity+10; i++ {
		c.Put(i, i)
	}
	if got := c.Len(); got != DefaultCapacity {
		t.Errorf("expected fallback capacity %d, got %d entries", DefaultCapacity, got)
	}
}

func TestCacheConcurrentUse(t *testing.T) {
	const capacity = 16
	c := New[int, int](capacity)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := (seed*500 + i) % 64
				c.Put(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if got := c.Len(); got > capacity {
		t.Errorf("cache holds %d entries after concurrent use, capacity is %d", got, capacity)
	}
}
