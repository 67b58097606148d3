package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loopstackhq/loopstack-backend/pkg/config"
)

type mockCmdable struct {
	values      map[string]string
	counters    map[string]int64
	expireCalls map[string]time.Duration
	pingErr     error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		values:      map[string]string{},
		counters:    map[string]int64{},
		expireCalls: map[string]time.Duration{},
	}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.pingErr != nil {
		cmd.SetErr(m.pingErr)
		return cmd
	}
	cmd.SetVal("PONG")
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.values[key] = value.(string)
	if ttl > 0 {
		m.expireCalls[key] = ttl
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.counters[key]++
	return redis.NewIntResult(m.counters[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestSetGetDel(t *testing.T) {
	mock := newMockCmdable()
	client := &Client{store: mock}
	ctx := context.Background()

	key := client.CartKey("session-1")
	if err := client.Set(ctx, key, `[{"productId":"p1"}]`, time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != `[{"productId":"p1"}]` {
		t.Fatalf("unexpected value: %q", got)
	}
	if mock.expireCalls[key] != time.Hour {
		t.Fatalf("expected ttl recorded on set, got %v", mock.expireCalls[key])
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("Del returned error: %v", err)
	}
	if _, err := client.Get(ctx, key); !IsNil(err) {
		t.Fatalf("expected missing-key sentinel after delete, got %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	client := &Client{store: newMockCmdable()}

	_, err := client.Get(context.Background(), client.CartKey("absent"))
	if !IsNil(err) {
		t.Fatalf("expected redis.Nil, got %v", err)
	}
}

func TestIncr(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	ctx := context.Background()

	key := client.CounterKey("product-views")
	for want := int64(1); want <= 3; want++ {
		got, err := client.Incr(ctx, key)
		if err != nil {
			t.Fatalf("Incr returned error: %v", err)
		}
		if got != want {
			t.Fatalf("Incr = %d, want %d", got, want)
		}
	}
}

func TestBuildKey(t *testing.T) {
	client := &Client{}

	if got := client.CartKey("abc-123"); got != "ls:cart:abc-123" {
		t.Fatalf("CartKey = %q", got)
	}
	if got := client.CounterKey("hits"); got != "ls:counter:hits" {
		t.Fatalf("CounterKey = %q", got)
	}
	if got := client.buildKey("cart", ""); got != "ls:cart" {
		t.Fatalf("buildKey skipping empties = %q", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	ctx := context.Background()

	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if _, err := client.Get(ctx, "ls:cart:x"); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Run("requires url or address", func(t *testing.T) {
		if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
			t.Fatal("expected error for empty config")
		}
	})

	t.Run("address fallback", func(t *testing.T) {
		opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 8})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Addr != "localhost:6379" || opts.DB != 2 || opts.PoolSize != 8 {
			t.Fatalf("options not mapped: %+v", opts)
		}
	})

	t.Run("url wins", func(t *testing.T) {
		opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@example.com:6380/1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Addr != "example.com:6380" || opts.DB != 1 || opts.Password != "secret" {
			t.Fatalf("url not parsed: %+v", opts)
		}
	})
}
