package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/creditlens/internal/model"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("2004_rome")
	b := CacheKey("2004_rome")
	c := CacheKey("2006_medieval_2")

	if a != b {
		t.Errorf("Expected stable keys, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different keys for different ids")
	}
	if !strings.HasPrefix(a, "creditlens:v1:") {
		t.Errorf("Expected namespaced key, got %s", a)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	value := []byte("entries")
	if err := c.Set("k", value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Stored value is not aliased to the caller's slice
	value[0] = 'X'

	got, ok := c.Get("k")
	if !ok || string(got) != "entries" {
		t.Errorf("Expected %q, got %q (found=%v)", "entries", got, ok)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := CacheKey("source")

	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := NewDiskCache(dir, time.Hour).Get(key)
	if !ok || string(got) != "payload" {
		t.Errorf("Expected payload from a fresh handle, got %q (found=%v)", got, ok)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("Expected deleting a missing key to succeed, got %v", err)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	memory := NewMemoryCache(time.Hour, time.Minute)
	layered := NewLayeredCache(memory, disk)

	if got, ok := layered.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("Expected disk hit, got %q (found=%v)", got, ok)
	}
	if _, ok := memory.Get("k"); !ok {
		t.Error("Expected disk hit to be promoted to memory")
	}

	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := layered.Get("k"); ok {
		t.Error("Expected miss after clear")
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(model.CacheConfig{Enabled: false}).(Noop); !ok {
		t.Error("Expected Noop cache when disabled")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, TTL: time.Hour}).(*MemoryCache); !ok {
		t.Error("Expected memory cache without a directory")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, Dir: t.TempDir(), TTL: time.Hour}).(*LayeredCache); !ok {
		t.Error("Expected layered cache with a directory")
	}

	var noop Noop
	_ = noop.Set("k", []byte("v"), 0)
	if _, ok := noop.Get("k"); ok {
		t.Error("Expected Noop to never hit")
	}
}
