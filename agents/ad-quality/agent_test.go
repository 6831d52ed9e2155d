package adquality

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"ad-analyzer/internal/models"
	"ad-analyzer/shared/config"
	"ad-analyzer/shared/scheduler"
	"ad-analyzer/shared/transcript"
)

type stubFetcher struct {
	docs  map[string]*models.Transcript
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, videoID string) (*models.Transcript, error) {
	s.calls++
	doc, ok := s.docs[videoID]
	if !ok {
		return nil, fmt.Errorf("fetching %s: %w", videoID, transcript.ErrNoCaptions)
	}
	return doc, nil
}

type stubAnalyzer struct {
	analysis *models.AdAnalysis
	err      error
	calls    int
}

func (s *stubAnalyzer) AnalyzeTranscript(ctx context.Context, t *models.Transcript) (*models.AdAnalysis, error) {
	s.calls++
	return s.analysis, s.err
}

func testAnalysis() *models.AdAnalysis {
	metrics := make(map[string]models.MetricScore)
	for i, name := range models.MetricNames {
		metrics[name] = models.MetricScore{Score: 5 + i%3, Explanation: "because " + name}
	}
	return &models.AdAnalysis{
		ProductName:    "NordVPN",
		StartTime:      "02:10",
		EndTime:        "03:45",
		OverallScore:   7,
		OverallSummary: "Decent integration.",
		Metrics:        metrics,
	}
}

func TestAgentName(t *testing.T) {
	agent := New(&config.Config{})
	if name := agent.Name(); name != "Ad Quality Analyzer" {
		t.Errorf("Agent.Name() = %s", name)
	}
}

func TestBatchMetricsGetSummary(t *testing.T) {
	tests := []struct {
		name     string
		metrics  BatchMetrics
		expected string
	}{
		{
			name:     "All zeros",
			metrics:  BatchMetrics{},
			expected: "processed 0 URLs, analyzed 0, 0 failed",
		},
		{
			name:     "Mixed outcome",
			metrics:  BatchMetrics{URLs: 5, Analyzed: 3, InvalidURLs: 1, TranscriptErrors: 1},
			expected: "processed 5 URLs, analyzed 3, 2 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.metrics.GetSummary(); got != tt.expected {
				t.Errorf("GetSummary() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAnalyzeBatch(t *testing.T) {
	fetcher := &stubFetcher{
		docs: map[string]*models.Transcript{
			"dQw4w9WgXcQ": {
				VideoID: "dQw4w9WgXcQ",
				Entries: []models.CaptionEntry{{Start: 0, Text: "hello"}},
			},
		},
	}
	analyzer := &stubAnalyzer{analysis: testAnalysis()}

	var out bytes.Buffer
	agent := &Agent{
		config:   &config.Config{},
		fetcher:  fetcher,
		analyzer: analyzer,
		out:      &out,
	}

	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"not a url",
		"", // blank lines are skipped entirely
	}

	metrics, err := agent.AnalyzeBatch(context.Background(), urls)
	if err != nil {
		t.Fatalf("AnalyzeBatch failed: %v", err)
	}

	if metrics.URLs != 2 {
		t.Errorf("URLs = %d, want 2", metrics.URLs)
	}
	if metrics.Analyzed != 1 {
		t.Errorf("Analyzed = %d, want 1", metrics.Analyzed)
	}
	if metrics.InvalidURLs != 1 {
		t.Errorf("InvalidURLs = %d, want 1", metrics.InvalidURLs)
	}
	if analyzer.calls != 1 {
		t.Errorf("Analyzer called %d times, want 1", analyzer.calls)
	}

	output := out.String()
	if !strings.Contains(output, "Invalid YouTube URL: not a url") {
		t.Errorf("Output missing invalid-URL report:\n%s", output)
	}
	if !strings.Contains(output, "Product: NordVPN") {
		t.Errorf("Output missing product line:\n%s", output)
	}
	if !strings.Contains(output, "Ad segment: 02:10 - 03:45") {
		t.Errorf("Output missing ad segment line:\n%s", output)
	}
	if !strings.Contains(output, "Overall score: 7/10") {
		t.Errorf("Output missing overall score:\n%s", output)
	}
	for _, name := range models.MetricNames {
		display := models.MetricDisplayName(name)
		if !strings.Contains(output, display+":") {
			t.Errorf("Output missing metric %q:\n%s", display, output)
		}
	}
	// Metadata lookup disabled, so placeholders are shown.
	if !strings.Contains(output, models.UnknownTitle) {
		t.Errorf("Output missing placeholder title:\n%s", output)
	}
}

func TestAnalyzeBatchTranscriptFailureContinues(t *testing.T) {
	fetcher := &stubFetcher{
		docs: map[string]*models.Transcript{
			"bbbbbbbbbbb": {
				VideoID: "bbbbbbbbbbb",
				Entries: []models.CaptionEntry{{Start: 0, Text: "ok"}},
			},
		},
	}
	analyzer := &stubAnalyzer{analysis: testAnalysis()}

	var out bytes.Buffer
	agent := &Agent{
		config:   &config.Config{},
		fetcher:  fetcher,
		analyzer: analyzer,
		out:      &out,
	}

	// First video has no captions; the second must still be analyzed.
	urls := []string{
		"https://youtu.be/aaaaaaaaaaa",
		"https://youtu.be/bbbbbbbbbbb",
	}

	metrics, err := agent.AnalyzeBatch(context.Background(), urls)
	if err != nil {
		t.Fatalf("AnalyzeBatch failed: %v", err)
	}
	if metrics.TranscriptErrors != 1 {
		t.Errorf("TranscriptErrors = %d, want 1", metrics.TranscriptErrors)
	}
	if metrics.Analyzed != 1 {
		t.Errorf("Analyzed = %d, want 1", metrics.Analyzed)
	}
	if !strings.Contains(out.String(), "Transcript unavailable for https://youtu.be/aaaaaaaaaaa") {
		t.Errorf("Output missing transcript failure report:\n%s", out.String())
	}
}

func TestAgentImplementsSchedulerAgent(t *testing.T) {
	var _ scheduler.Agent = New(&config.Config{})
}
