package youtube

import (
	"context"
	"fmt"
	"log"

	"ad-analyzer/internal/models"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// MetadataClient looks up video title and channel via the YouTube Data
// API. Lookups only read public data, so API-key access is enough.
type MetadataClient struct {
	service *ytapi.Service
}

func NewMetadataClient(ctx context.Context, apiKey string) (*MetadataClient, error) {
	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &MetadataClient{service: service}, nil
}

// GetVideoInfo returns display metadata for videoID. It never fails:
// any lookup problem degrades to placeholder title and channel so a
// metadata outage cannot sink the batch.
func (m *MetadataClient) GetVideoInfo(ctx context.Context, videoID string) *models.VideoInfo {
	info := &models.VideoInfo{
		ID:           videoID,
		URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
		Title:        models.UnknownTitle,
		ChannelTitle: models.UnknownChannel,
	}
	if m == nil || m.service == nil {
		return info
	}

	resp, err := m.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		log.Printf("Warning: metadata lookup failed for %s: %v", videoID, err)
		return info
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		log.Printf("Warning: no metadata found for %s", videoID)
		return info
	}

	snippet := resp.Items[0].Snippet
	if snippet.Title != "" {
		info.Title = snippet.Title
	}
	if snippet.ChannelTitle != "" {
		info.ChannelTitle = snippet.ChannelTitle
	}
	return info
}
