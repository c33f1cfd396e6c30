package fpcache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"submatch/internal/fingerprint"
	"submatch/internal/fpcache"
)

func openCache(t *testing.T) (*fpcache.Cache, string) {
	t.Helper()
	dir := t.TempDir()
	cache, err := fpcache.Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache, dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPutGetRoundTrip(t *testing.T) {
	cache, dir := openCache(t)
	sub := writeFile(t, dir, "a.srt", "subtitle content")

	set := fingerprint.NewSet()
	set.Add("aaa")
	set.Add("bbb")

	if err := cache.Put(sub, set); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, ok := cache.Get(sub)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !got.Equal(set) {
		t.Fatalf("cached set differs: %v vs %v", got, set)
	}
}

func TestGetMissesWhenFileChanged(t *testing.T) {
	cache, dir := openCache(t)
	sub := writeFile(t, dir, "a.srt", "original")

	set := fingerprint.NewSet()
	set.Add("aaa")
	if err := cache.Put(sub, set); err != nil {
		t.Fatal(err)
	}

	// Change size and push mtime forward.
	if err := os.WriteFile(sub, []byte("changed content"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(sub, future, future); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get(sub); ok {
		t.Fatal("expected cache miss after file modification")
	}
}

func TestGetMissesForUnknownOrDeletedFile(t *testing.T) {
	cache, dir := openCache(t)

	if _, ok := cache.Get(filepath.Join(dir, "never-seen.srt")); ok {
		t.Fatal("expected miss for unknown path")
	}

	sub := writeFile(t, dir, "gone.srt", "x")
	set := fingerprint.NewSet()
	set.Add("d")
	if err := cache.Put(sub, set); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(sub); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(sub); ok {
		t.Fatal("expected miss for deleted file")
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	cache, dir := openCache(t)
	sub := writeFile(t, dir, "a.srt", "content")

	first := fingerprint.NewSet()
	first.Add("old")
	if err := cache.Put(sub, first); err != nil {
		t.Fatal(err)
	}

	second := fingerprint.NewSet()
	second.Add("new1")
	second.Add("new2")
	if err := cache.Put(sub, second); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get(sub)
	if !ok {
		t.Fatal("expected hit")
	}
	if !got.Equal(second) {
		t.Fatalf("expected overwritten set, got %v", got)
	}
}

func TestEmptySetRoundTrips(t *testing.T) {
	cache, dir := openCache(t)
	sub := writeFile(t, dir, "empty.srt", "1\n00:00:01,000 --> 00:00:02,000\n...\n")

	if err := cache.Put(sub, fingerprint.NewSet()); err != nil {
		t.Fatal(err)
	}
	got, ok := cache.Get(sub)
	if !ok {
		t.Fatal("expected hit for empty set")
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty set, got %d entries", got.Len())
	}
}
