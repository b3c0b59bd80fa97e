package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestCache(ttl time.Duration) (*TTLCache[string, int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string, int](ttl)
	c.now = clock.now
	return c, clock
}

func TestSetAndGet(t *testing.T) {
	cache, _ := newTestCache(time.Minute)

	cache.Set("key1", 42)

	value, ok := cache.Get("key1")
	if !ok {
		t.Fatal("Get returned ok=false for existing key")
	}
	if value != 42 {
		t.Errorf("Get returned wrong value: got %d, want 42", value)
	}

	if _, ok := cache.Get("nonexistent"); ok {
		t.Error("Get returned ok=true for non-existent key")
	}
}

func TestEntriesExpireIndividually(t *testing.T) {
	cache, clock := newTestCache(time.Minute)

	cache.Set("old", 1)
	clock.advance(40 * time.Second)
	cache.Set("new", 2)
	clock.advance(30 * time.Second)

	if _, ok := cache.Get("old"); ok {
		t.Error("Expected old entry to be expired")
	}
	if v, ok := cache.Get("new"); !ok || v != 2 {
		t.Error("Expected new entry to survive")
	}

	if removed := cache.Purge(); removed != 1 {
		t.Errorf("Purge removed %d entries, want 1", removed)
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d after purge, want 1", cache.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	cache, clock := newTestCache(0)

	cache.Set("key", 7)
	clock.advance(1000 * time.Hour)
	if v, ok := cache.Get("key"); !ok || v != 7 {
		t.Error("Expected entry without TTL to persist")
	}
}

func TestGetOrLoad(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	calls := 0
	load := func() (int, error) {
		calls++
		return 99, nil
	}

	v, hit, err := cache.GetOrLoad("k", load)
	if err != nil || hit || v != 99 {
		t.Fatalf("first GetOrLoad = %d, %v, %v", v, hit, err)
	}
	v, hit, err = cache.GetOrLoad("k", load)
	if err != nil || !hit || v != 99 {
		t.Fatalf("second GetOrLoad = %d, %v, %v", v, hit, err)
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, _, err := cache.GetOrLoad("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("Expected load error, got %v", err)
	}
	if _, ok := cache.Get("bad"); ok {
		t.Error("Errors must not be cached")
	}
}

func TestDeleteAndInvalidate(t *testing.T) {
	cache, _ := newTestCache(time.Minute)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")
	if _, ok := cache.Get("a"); ok {
		t.Error("Expected deleted key to be gone")
	}

	cache.Invalidate()
	if cache.Len() != 0 {
		t.Errorf("Len = %d after Invalidate", cache.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := New[int, int](time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Set(id*100+j, j)
				cache.Get(id*100 + j)
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() != 1000 {
		t.Errorf("Len = %d, want 1000", cache.Len())
	}
}
