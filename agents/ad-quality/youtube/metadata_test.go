package youtube

import (
	"context"
	"testing"

	"ad-analyzer/internal/models"
)

func TestGetVideoInfoDegradesWithoutService(t *testing.T) {
	// A nil client stands in for "metadata lookup disabled"; the call
	// must still produce usable placeholders rather than failing.
	var client *MetadataClient

	info := client.GetVideoInfo(context.Background(), "dQw4w9WgXcQ")
	if info == nil {
		t.Fatal("GetVideoInfo returned nil")
	}
	if info.ID != "dQw4w9WgXcQ" {
		t.Errorf("ID = %q", info.ID)
	}
	if info.Title != models.UnknownTitle {
		t.Errorf("Title = %q, want %q", info.Title, models.UnknownTitle)
	}
	if info.ChannelTitle != models.UnknownChannel {
		t.Errorf("ChannelTitle = %q, want %q", info.ChannelTitle, models.UnknownChannel)
	}
	if info.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("URL = %q", info.URL)
	}
}
