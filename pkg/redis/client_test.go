package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCmdable struct {
	data        map[string]string
	incr        map[string]int64
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (f *fakeCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	f.incr[key]++
	return redis.NewIntResult(f.incr[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expireCalls = append(f.expireCalls, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newFakeCmdable()}

	if err := client.Set(ctx, "cart_teonv", `[{"id":1}]`, 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, "cart_teonv")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `[{"id":1}]` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.Del(ctx, "cart_teonv"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "cart_teonv"); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestIncrWithTTLSetsExpiryOnce(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCmdable()
	client := &Client{store: fake}

	for want := int64(1); want <= 3; want++ {
		count, err := client.IncrWithTTL(ctx, "rl", time.Minute)
		if err != nil {
			t.Fatalf("incr %d failed: %v", want, err)
		}
		if count != want {
			t.Fatalf("expected count %d, got %d", want, count)
		}
	}
	if len(fake.expireCalls) != 1 {
		t.Fatalf("expected expire on first increment only, got %d calls", len(fake.expireCalls))
	}
	if fake.expireCalls[0].ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", fake.expireCalls[0].ttl)
	}
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newFakeCmdable()}

	for i := 0; i < 2; i++ {
		allowed, _, err := client.FixedWindowAllow(ctx, "ip:login:10.0.0.9", 2, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, count, err := client.FixedWindowAllow(ctx, "ip:login:10.0.0.9", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("expected limit reached")
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestRateLimitKeyIsNamespaced(t *testing.T) {
	client := &Client{}
	if got := client.RateLimitKey("ip:login:10.0.0.9"); got != "bakeshop:rate_limit:ip:login:10.0.0.9" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	client := &Client{}
	if err := client.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if _, err := client.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}
