package cache

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	key := Key("abc123")
	if !strings.HasPrefix(key, "claims:v1:") {
		t.Errorf("Key = %q, want claims:v1: prefix", key)
	}
	if !strings.HasSuffix(key, "abc123") {
		t.Errorf("Key = %q, want hash suffix", key)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("value")) {
		t.Errorf("Get = %q/%v, want value/true", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected miss after clear")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh cache over the same directory sees the entry.
	c2 := NewDiskCache(dir, time.Minute)
	val, found := c2.Get("k")
	if !found || !bytes.Equal(val, []byte("payload")) {
		t.Errorf("Get = %q/%v, want payload/true", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("payload"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestDiskCache_RenamedFileNotServed(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("claims:v1:aaa", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A cache file moved under another key's name must not answer for it:
	// the embedded key no longer matches.
	if err := os.Rename(c.path("claims:v1:aaa"), c.path("claims:v1:bbb")); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, found := c.Get("claims:v1:bbb"); found {
		t.Error("Expected miss for an entry recorded under a different key")
	}
}

func TestDiskCache_DefaultTTL(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	// ttl=0 falls back to the cache default.
	if err := c.Set("k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("k"); !found {
		t.Error("Expected hit with default TTL")
	}
}

func TestLayeredCache_Promotion(t *testing.T) {
	dir := t.TempDir()

	// Seed disk via a plain disk cache, then read through a fresh layered
	// cache: the hit should be served and promoted to memory.
	seed := NewDiskCache(dir, time.Minute)
	if err := seed.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := layered.Get("k")
	if !found || !bytes.Equal(val, []byte("payload")) {
		t.Fatalf("Get = %q/%v, want payload/true", val, found)
	}

	// Remove the disk entry; the promoted copy must still serve.
	_ = seed.Delete("k")
	if _, found := layered.Get("k"); !found {
		t.Error("Expected memory-promoted hit after disk delete")
	}
}

func TestLayeredCache_SetAndClear(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := layered.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Both layers hold the value.
	disk := NewDiskCache(dir, time.Minute)
	if _, found := disk.Get("k"); !found {
		t.Error("Expected disk layer to hold the value")
	}

	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("Expected miss after clear")
	}
}
