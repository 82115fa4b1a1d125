package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "png bytes" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	c.Set(ctx, "k", []byte("v"), 0)
	os.WriteFile(c.path("k"), []byte("{not json"), 0644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
}

func TestFileCacheInfoAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	info, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Entries != 3 || info.Bytes == 0 || info.Dir != c.Dir() {
		t.Errorf("Info = %+v", info)
	}

	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Fatalf("Clear = %d, %v", n, err)
	}
	if info, _ := c.Info(); info.Entries != 0 {
		t.Errorf("entries after Clear = %d", info.Entries)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	type opts struct {
		Labels bool
		Colors map[string]string
	}
	a, err := HashJSON(opts{Labels: true, Colors: map[string]string{"x": "red", "y": "blue"}})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON(opts{Labels: true, Colors: map[string]string{"y": "blue", "x": "red"}})
	if a != b {
		t.Error("HashJSON should not depend on map insertion order")
	}
	c, _ := HashJSON(opts{Labels: false})
	if a == c {
		t.Error("different values should hash differently")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON of a func should fail")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.NetworkKey("abc"); got != "network:abc" {
		t.Errorf("NetworkKey unexpected: %s", got)
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{View: "diagram", Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{View: "diagram", Format: "png"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{View: "nodelink", Format: "svg"})
	ak4 := k.ArtifactKey("hash123", ArtifactKeyOpts{View: "diagram", Format: "svg", Style: "s2"})
	seen := map[string]bool{}
	for _, key := range []string{ak1, ak2, ak3, ak4} {
		if seen[key] {
			t.Errorf("duplicate artifact key %s", key)
		}
		seen[key] = true
		if !strings.HasPrefix(key, "artifact:") {
			t.Errorf("ArtifactKey missing prefix: %s", key)
		}
	}
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		name    string
		inner   Keyer
		prefix  string
		network string
	}{
		{"default inner", nil, "staging:", "staging:network:abc"},
		{"explicit inner", NewDefaultKeyer(), "nnviz:", "nnviz:network:abc"},
		{"empty prefix", nil, "", "network:abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := WithPrefix(tt.inner, tt.prefix)
			if got := k.NetworkKey("abc"); got != tt.network {
				t.Errorf("NetworkKey = %q, want %q", got, tt.network)
			}
			key := k.ArtifactKey("h", ArtifactKeyOpts{Format: "png"})
			if !strings.HasPrefix(key, tt.prefix+"artifact:") {
				t.Errorf("ArtifactKey = %q, want prefix %q", key, tt.prefix+"artifact:")
			}
		})
	}
}

var errReset = errors.New("connection reset")

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) should stay nil")
	}
	err := transient(errReset)
	if !isTransient(err) || !errors.Is(err, errReset) {
		t.Errorf("transient(%v) lost its marker or cause", errReset)
	}
	if isTransient(errReset) {
		t.Error("plain errors are not transient")
	}
}

func TestBackoff(t *testing.T) {
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		failures  int
		fail      error
		wantErr   error
		wantCalls int
	}{
		{"success", 0, nil, nil, 1},
		{"permanent", 5, errFatal, errFatal, 1},
		{"recovers", 1, transient(errReset), nil, 2},
		{"exhausted", 5, transient(errReset), errReset, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := newBackoff(time.Millisecond).do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.fail
				}
				return nil
			})
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newBackoff(time.Hour).do(ctx, func() error {
		return transient(errReset)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewBackoffDefault(t *testing.T) {
	if b := newBackoff(0); b.delay != 100*time.Millisecond || b.attempts != 3 {
		t.Errorf("newBackoff(0) = %+v", b)
	}
}
