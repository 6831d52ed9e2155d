package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ad-analyzer/internal/models"

	"github.com/creachadair/atomicfile"
)

// Cache persists one JSON file of caption entries per video ID. An
// entry, once written, is treated as the source of truth for that
// video for all future runs; there is no expiry.
type Cache struct {
	dir string
}

func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(videoID string) string {
	return filepath.Join(c.dir, videoID+".json")
}

// Load returns the cached caption entries for videoID, or (nil, nil)
// when no entry exists. A file that exists but is not valid JSON is a
// *CorruptError, not a miss.
func (c *Cache) Load(videoID string) ([]models.CaptionEntry, error) {
	data, err := os.ReadFile(c.path(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached transcript for %s: %w", videoID, err)
	}

	var entries []models.CaptionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &CorruptError{VideoID: videoID, Path: c.path(videoID), Err: err}
	}
	return entries, nil
}

// Save writes the full caption sequence for videoID, replacing any
// prior entry. The write goes through a temporary file and rename so a
// concurrent reader never observes a partial file.
func (c *Cache) Save(videoID string, entries []models.CaptionEntry) error {
	f, err := atomicfile.New(c.path(videoID), 0644)
	if err != nil {
		return fmt.Errorf("failed to create cache file for %s: %w", videoID, err)
	}
	defer f.Cancel()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode transcript for %s: %w", videoID, err)
	}
	return f.Close()
}
