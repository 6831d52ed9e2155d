package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ad-analyzer/internal/models"
)

// Client fetches caption tracks from YouTube. It scrapes the caption
// track list out of the watch page, then downloads the timed-text
// track itself. No credentials are required for public captions.
type Client struct {
	httpClient *http.Client
	language   string
	baseURL    string
}

func NewClient(language string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		language: language,
		baseURL:  "https://www.youtube.com",
	}
}

var captionTracksRe = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedTextTrack struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// FetchCaptions downloads the caption track for videoID and projects it
// down to ordered {start, text} entries.
func (c *Client) FetchCaptions(ctx context.Context, videoID string) ([]models.CaptionEntry, error) {
	page, err := c.get(ctx, fmt.Sprintf("%s/watch?v=%s", c.baseURL, videoID))
	if err != nil {
		return nil, fmt.Errorf("failed to load watch page for %s: %w", videoID, err)
	}

	track, err := c.pickTrack(page)
	if err != nil {
		return nil, fmt.Errorf("%w for video %s", err, videoID)
	}

	body, err := c.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caption track for %s: %w", videoID, err)
	}

	var tt timedTextTrack
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse caption track for %s: %w", videoID, err)
	}

	var entries []models.CaptionEntry
	for _, text := range tt.Texts {
		cleaned := strings.TrimSpace(html.UnescapeString(text.Text))
		if cleaned == "" {
			continue
		}
		entries = append(entries, models.CaptionEntry{
			Start: text.Start,
			Text:  cleaned,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: caption track for %s is empty", ErrNoCaptions, videoID)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// pickTrack extracts the caption track list from the watch page and
// selects the best track for the configured language. Manually
// authored tracks win over auto-generated ("asr") ones.
func (c *Client) pickTrack(page []byte) (*captionTrack, error) {
	m := captionTracksRe.FindSubmatch(page)
	if m == nil {
		return nil, ErrNoCaptions
	}

	var tracks []captionTrack
	if err := json.Unmarshal(m[1], &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption track list: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	var fallback *captionTrack
	for i := range tracks {
		track := &tracks[i]
		if !strings.HasPrefix(track.LanguageCode, c.language) {
			continue
		}
		if track.Kind != "asr" {
			return track, nil
		}
		if fallback == nil {
			fallback = track
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: no %q track", ErrNoCaptions, c.language)
}
