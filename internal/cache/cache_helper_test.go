package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, "group:"), mr
}

func TestCacheHelperSetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	want := cachedGroup{ID: "g1", Name: "Python Group A"}
	if err := helper.Set(ctx, "id:g1", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedGroup
	if err := helper.Get(ctx, "id:g1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCacheHelperGetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedGroup
	if err := helper.Get(context.Background(), "id:missing", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperDelete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"id:g1", "schedule:g1", "summary:g1"} {
		if err := helper.Set(ctx, key, cachedGroup{ID: "g1"}, time.Minute); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	if err := helper.Delete(ctx, "id:g1", "schedule:g1", "summary:g1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got cachedGroup
	if err := helper.Get(ctx, "id:g1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelperInvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "student:s1:v1", cachedGroup{}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Set(ctx, "student:s1:v2", cachedGroup{}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Set(ctx, "student:s2:v1", cachedGroup{}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "student:s1*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	var got cachedGroup
	if err := helper.Get(ctx, "student:s1:v1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("matching key survived invalidation: err = %v", err)
	}
	if err := helper.Get(ctx, "student:s2:v1", &got); err != nil {
		t.Errorf("unrelated key was invalidated: err = %v", err)
	}
}

func TestCacheHelperExpiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "id:g1", cachedGroup{ID: "g1"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var got cachedGroup
	if err := helper.Get(ctx, "id:g1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedGroup{ID: "g1", Name: "Python Group A"}, nil
	}

	var first cachedGroup
	if err := helper.CacheOrExecute(ctx, "id:g1", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}
	if first.Name != "Python Group A" {
		t.Errorf("first read = %+v", first)
	}

	// The cache populates asynchronously; poll until the write lands.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var probe cachedGroup
		if err := helper.Get(ctx, "id:g1", &probe); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	var second cachedGroup
	if err := helper.CacheOrExecute(ctx, "id:g1", &second, time.Minute, fetch); err != nil {
		t.Fatalf("second CacheOrExecute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times after cache hit, want 1", calls)
	}
	if second != first {
		t.Errorf("second read = %+v, want %+v", second, first)
	}
}

func TestCacheHelperDegradesWithoutClient(t *testing.T) {
	helper := NewCacheHelper(nil, "group:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:g1", cachedGroup{}, time.Minute); err != nil {
		t.Errorf("Set() without client error = %v, want nil", err)
	}

	var got cachedGroup
	if err := helper.Get(ctx, "id:g1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() without client error = %v, want ErrCacheNotAvailable", err)
	}

	calls := 0
	err := helper.CacheOrExecute(ctx, "id:g1", &got, time.Minute, func() (interface{}, error) {
		calls++
		return cachedGroup{ID: "g1"}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute() without client error = %v", err)
	}
	if calls != 1 || got.ID != "g1" {
		t.Errorf("pass-through fetch: calls = %d, got = %+v", calls, got)
	}
}
