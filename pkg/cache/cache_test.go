package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestHash(t *testing.T) {
	h1 := Hash([]byte("render:a"))
	h2 := Hash([]byte("render:b"))

	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
	if h1 == h2 {
		t.Error("different inputs produced the same hash")
	}
	if h1 != Hash([]byte("render:a")) {
		t.Error("same input produced different hashes")
	}
}

func TestFileCacheSetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	value := []byte("<svg/>")

	if err := c.Set(ctx, "key1", value, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() hit, want miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "short", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("expired entry still returned")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get() hit after Delete()")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "key"); ok || err != nil {
		t.Errorf("Get() = (ok=%v, err=%v), want miss", ok, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
