package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"ad-analyzer/internal/models"
)

func writeRawCacheFile(dir, videoID, content string) error {
	return os.WriteFile(filepath.Join(dir, videoID+".json"), []byte(content), 0644)
}

type fakeSource struct {
	entries []models.CaptionEntry
	err     error
	calls   int
}

func (f *fakeSource) FetchCaptions(ctx context.Context, videoID string) ([]models.CaptionEntry, error) {
	f.calls++
	return f.entries, f.err
}

func TestFetcherCachesFirstFetch(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	source := &fakeSource{
		entries: []models.CaptionEntry{
			{Start: 1.5, Text: "hello"},
			{Start: 3.0, Text: "world"},
		},
	}
	fetcher := NewFetcher(cache, source)

	doc, err := fetcher.Fetch(context.Background(), "abcdefghijk")
	if err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}
	if doc.VideoID != "abcdefghijk" {
		t.Errorf("VideoID = %q, want %q", doc.VideoID, "abcdefghijk")
	}
	if !reflect.DeepEqual(doc.Entries, source.entries) {
		t.Errorf("Entries mismatch: got %v", doc.Entries)
	}
	if source.calls != 1 {
		t.Fatalf("Expected 1 remote call, got %d", source.calls)
	}

	// Second fetch must be served from the cache.
	doc2, err := fetcher.Fetch(context.Background(), "abcdefghijk")
	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("Cached fetch hit the remote service (%d calls)", source.calls)
	}
	if !reflect.DeepEqual(doc2.Entries, doc.Entries) {
		t.Errorf("Cached entries differ from original: %v vs %v", doc2.Entries, doc.Entries)
	}
}

func TestFetcherDoesNotCacheFailures(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	source := &fakeSource{err: ErrNoCaptions}
	fetcher := NewFetcher(cache, source)

	if _, err := fetcher.Fetch(context.Background(), "abcdefghijk"); !errors.Is(err, ErrNoCaptions) {
		t.Fatalf("Expected ErrNoCaptions, got %v", err)
	}

	// The failure must not be cached, so a retry calls the service again.
	source.err = nil
	source.entries = []models.CaptionEntry{{Start: 0, Text: "now it works"}}

	doc, err := fetcher.Fetch(context.Background(), "abcdefghijk")
	if err != nil {
		t.Fatalf("Retry after failure should succeed: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("Expected 2 remote calls, got %d", source.calls)
	}
	if len(doc.Entries) != 1 {
		t.Errorf("Unexpected entries after retry: %v", doc.Entries)
	}
}

func TestFetcherPropagatesCorruptCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	if err := cache.Save("abcdefghijk", []models.CaptionEntry{{Start: 0, Text: "x"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Corrupt the file behind the cache's back.
	if err := writeRawCacheFile(dir, "abcdefghijk", "][ garbage"); err != nil {
		t.Fatalf("Failed to corrupt cache file: %v", err)
	}

	source := &fakeSource{entries: []models.CaptionEntry{{Start: 0, Text: "fresh"}}}
	fetcher := NewFetcher(cache, source)

	_, err = fetcher.Fetch(context.Background(), "abcdefghijk")
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Expected *CorruptError, got %v", err)
	}
	if source.calls != 0 {
		t.Errorf("Corrupt cache must not be masked by a re-fetch (%d calls)", source.calls)
	}
}
