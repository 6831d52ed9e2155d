package models

// CaptionEntry is one timed line of a video's transcript. Start is the
// offset in seconds from the beginning of the video.
type CaptionEntry struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

// Transcript is the full ordered caption sequence for a single video.
// It is never mutated after a fetch; a re-fetch replaces it wholesale.
type Transcript struct {
	VideoID string         `json:"video_id"`
	Entries []CaptionEntry `json:"entries"`
}
