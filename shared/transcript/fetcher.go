package transcript

import (
	"context"
	"fmt"
	"log"

	"ad-analyzer/internal/models"
)

// CaptionSource is the remote captioning service consumed by Fetcher.
type CaptionSource interface {
	FetchCaptions(ctx context.Context, videoID string) ([]models.CaptionEntry, error)
}

// Fetcher resolves transcripts cache-first: at most one remote fetch
// per video ID for the lifetime of the cache.
type Fetcher struct {
	cache  *Cache
	source CaptionSource
}

func NewFetcher(cache *Cache, source CaptionSource) *Fetcher {
	return &Fetcher{
		cache:  cache,
		source: source,
	}
}

// Fetch returns the transcript for videoID, consulting the cache before
// the remote service. Remote failures are returned to the caller and
// never cached.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (*models.Transcript, error) {
	entries, err := f.cache.Load(videoID)
	if err != nil {
		return nil, err
	}
	if entries != nil {
		log.Printf("Using cached transcript for %s (%d entries)", videoID, len(entries))
		return &models.Transcript{VideoID: videoID, Entries: entries}, nil
	}

	entries, err = f.source.FetchCaptions(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript for %s: %w", videoID, err)
	}

	if err := f.cache.Save(videoID, entries); err != nil {
		// The transcript is still usable this run; the next run will re-fetch.
		log.Printf("Warning: failed to cache transcript for %s: %v", videoID, err)
	}

	return &models.Transcript{VideoID: videoID, Entries: entries}, nil
}
