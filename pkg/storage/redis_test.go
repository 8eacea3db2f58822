package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisSaveLoadRemove(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	adapter := &Redis{store: mock}

	if err := adapter.Save(ctx, KeyCart, map[string]int{"p1": 2}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := mock.data["sc:state:cart"]; !ok {
		t.Fatalf("expected namespaced key, got %v", mock.data)
	}

	out := map[string]int{}
	found, err := adapter.Load(ctx, KeyCart, &out)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !found || out["p1"] != 2 {
		t.Fatalf("unexpected load result found=%v out=%v", found, out)
	}

	if err := adapter.Remove(ctx, KeyCart); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	found, err = adapter.Load(ctx, KeyCart, &out)
	if err != nil {
		t.Fatalf("load after remove failed: %v", err)
	}
	if found {
		t.Fatal("expected key removed")
	}
}

func TestRedisMalformedPayloadTreatedAsAbsent(t *testing.T) {
	mock := newMockCmdable()
	mock.data["sc:state:reviews"] = "{broken"
	adapter := &Redis{store: mock}

	var out map[string][]string
	found, err := adapter.Load(context.Background(), KeyReviews, &out)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if found {
		t.Fatal("malformed payload must read as absent")
	}
}

func TestRedisStateKey(t *testing.T) {
	adapter := &Redis{}
	if got := adapter.stateKey("wishlist"); got != "sc:state:wishlist" {
		t.Fatalf("unexpected key %s", got)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
