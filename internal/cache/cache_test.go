package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetSource(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()
	url := "https://images.example.com/p/tt1.jpg"
	data := []byte{0xff, 0xd8, 0xff, 0x00, 0x01}

	// 1) Cache miss
	got, err := c.GetSource(ctx, url)
	if err != nil {
		t.Fatalf("GetSource miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetSource miss: got %v; want nil", got)
	}

	// 2) Set then hit
	c.SetSource(ctx, url, data, time.Minute)
	got, err = c.GetSource(ctx, url)
	if err != nil {
		t.Fatalf("GetSource hit: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("GetSource hit: got %v; want %v", got, data)
	}

	key := getCacheKey(url)
	if !mr.Exists(key) {
		t.Fatalf("expected key %q to exist", key)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Errorf("TTL = %v; want %v", ttl, time.Minute)
	}

	// 3) Expiry
	mr.FastForward(2 * time.Minute)
	got, err = c.GetSource(ctx, url)
	if err != nil {
		t.Fatalf("GetSource after expiry: %v", err)
	}
	if got != nil {
		t.Errorf("GetSource after expiry: got %v; want nil", got)
	}
}

func TestSetSource_SkipsEmptyOrNoTTL(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	c.SetSource(ctx, "https://a/empty.jpg", nil, time.Minute)
	c.SetSource(ctx, "https://a/nottl.jpg", []byte("x"), 0)

	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestGetCacheKey(t *testing.T) {
	k1 := getCacheKey("https://a/1.jpg")
	k2 := getCacheKey("https://a/2.jpg")
	if !strings.HasPrefix(k1, "poster:source:") {
		t.Errorf("unexpected key prefix: %q", k1)
	}
	if k1 == k2 {
		t.Error("different URLs share a key")
	}
	if k1 != getCacheKey("https://a/1.jpg") {
		t.Error("key is not stable")
	}
}

func TestGetSource_RedisDown(t *testing.T) {
	c, mr := makeTestCache(t)
	mr.Close()

	if _, err := c.GetSource(context.Background(), "https://a/1.jpg"); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
	// must not panic or block
	c.SetSource(context.Background(), "https://a/1.jpg", []byte("x"), time.Minute)
}

func TestNoopCache(t *testing.T) {
	n := NewNoop()
	n.SetSource(context.Background(), "u", []byte("x"), time.Minute)
	got, err := n.GetSource(context.Background(), "u")
	if err != nil || got != nil {
		t.Errorf("NoopCache.GetSource = %v, %v; want nil, nil", got, err)
	}
}
