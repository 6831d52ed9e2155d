package models

import "time"

// Placeholder values used when metadata lookup fails or is disabled.
const (
	UnknownTitle   = "Unknown Title"
	UnknownChannel = "Unknown Channel"
)

type VideoInfo struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
}

// AdReport bundles one analyzed video with its analysis.
type AdReport struct {
	Video    *VideoInfo  `json:"video"`
	Analysis *AdAnalysis `json:"analysis"`
}

// BatchReport summarizes one batch run for the email report.
type BatchReport struct {
	Date    time.Time   `json:"date"`
	Reports []*AdReport `json:"reports"`
	Total   int         `json:"total_processed"`
	Failed  int         `json:"failed"`
}
