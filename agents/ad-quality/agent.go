package adquality

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"ad-analyzer/agents/ad-quality/youtube"
	"ad-analyzer/internal/models"
	"ad-analyzer/shared/ai"
	"ad-analyzer/shared/config"
	"ad-analyzer/shared/email"
	"ad-analyzer/shared/scheduler"
	"ad-analyzer/shared/transcript"
)

type transcriptSource interface {
	Fetch(ctx context.Context, videoID string) (*models.Transcript, error)
}

type adAnalyzer interface {
	AnalyzeTranscript(ctx context.Context, t *models.Transcript) (*models.AdAnalysis, error)
}

type metadataSource interface {
	GetVideoInfo(ctx context.Context, videoID string) *models.VideoInfo
}

// Agent runs the ad-quality pipeline over a batch of video URLs:
// extract ID, fetch transcript (cache-first), analyze with the model,
// render the assessment. Per-video failures are reported and skipped
// so one bad video never stops the batch.
type Agent struct {
	config      *config.Config
	fetcher     transcriptSource
	analyzer    adAnalyzer
	metadata    metadataSource
	emailSender *email.Sender
	out         io.Writer
}

func New(cfg *config.Config) *Agent {
	return &Agent{
		config: cfg,
		out:    os.Stdout,
	}
}

func (a *Agent) Name() string {
	return "Ad Quality Analyzer"
}

func (a *Agent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.fetcher == nil {
		cache, err := transcript.NewCache(a.config.Transcript.CacheDir)
		if err != nil {
			return fmt.Errorf("failed to create transcript cache: %w", err)
		}
		client := transcript.NewClient(a.config.Transcript.Language)
		a.fetcher = transcript.NewFetcher(cache, client)
		log.Printf("Transcript cache initialized at %s", a.config.Transcript.CacheDir)
	}

	if a.analyzer == nil {
		analyzer, err := ai.NewAnalyzer(context.Background(), a.config)
		if err != nil {
			return fmt.Errorf("failed to create AI analyzer: %w", err)
		}
		a.analyzer = analyzer
		log.Println("AI analyzer initialized")
	}

	if a.metadata == nil && !a.config.YouTube.DisableMetadata {
		client, err := youtube.NewMetadataClient(context.Background(), a.config.YouTube.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create metadata client: %w", err)
		}
		a.metadata = client
		log.Println("Metadata client initialized")
	}

	if a.emailSender == nil && a.config.Email.Enabled() {
		a.emailSender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	return nil
}

// BatchMetrics summarizes one batch run.
type BatchMetrics struct {
	URLs             int
	Analyzed         int
	InvalidURLs      int
	TranscriptErrors int
	AnalysisErrors   int
}

func (m BatchMetrics) GetSummary() string {
	return fmt.Sprintf("processed %d URLs, analyzed %d, %d failed",
		m.URLs, m.Analyzed, m.URLs-m.Analyzed)
}

// RunOnce analyzes the configured watchlist. Scheduled mode only; the
// CLI's one-shot mode calls AnalyzeBatch directly with its own URLs.
func (a *Agent) RunOnce(ctx context.Context) (scheduler.Metrics, error) {
	if a.config.Watchlist == "" {
		return nil, fmt.Errorf("watchlist file is required for scheduled runs (set watchlist in config)")
	}

	data, err := os.ReadFile(a.config.Watchlist)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist %s: %w", a.config.Watchlist, err)
	}

	metrics, err := a.AnalyzeBatch(ctx, strings.Split(string(data), "\n"))
	return metrics, err
}

// AnalyzeBatch processes each URL fully before moving to the next.
// Blank lines are ignored; invalid URLs and per-video failures are
// reported individually without aborting the batch.
func (a *Agent) AnalyzeBatch(ctx context.Context, urls []string) (BatchMetrics, error) {
	var metrics BatchMetrics
	var reports []*models.AdReport

	for _, rawURL := range urls {
		url := strings.TrimSpace(rawURL)
		if url == "" {
			continue
		}
		metrics.URLs++

		videoID, err := youtube.ExtractVideoID(url)
		if err != nil {
			metrics.InvalidURLs++
			fmt.Fprintf(a.out, "Invalid YouTube URL: %s\n", url)
			continue
		}

		doc, err := a.fetcher.Fetch(ctx, videoID)
		if err != nil {
			metrics.TranscriptErrors++
			log.Printf("Warning: transcript unavailable for %s: %v", videoID, err)
			fmt.Fprintf(a.out, "Transcript unavailable for %s: %v\n", url, err)
			continue
		}

		info := a.lookupVideoInfo(ctx, videoID)

		analysis, err := a.analyzer.AnalyzeTranscript(ctx, doc)
		if err != nil {
			metrics.AnalysisErrors++
			log.Printf("Warning: analysis failed for %s (%s): %v", videoID, info.Title, err)
			fmt.Fprintf(a.out, "Analysis failed for %s: %v\n", url, err)
			continue
		}

		metrics.Analyzed++
		a.printAnalysis(info, analysis)
		reports = append(reports, &models.AdReport{Video: info, Analysis: analysis})
	}

	if a.emailSender != nil && len(reports) > 0 {
		report := &models.BatchReport{
			Date:    time.Now(),
			Reports: reports,
			Total:   metrics.URLs,
			Failed:  metrics.URLs - metrics.Analyzed,
		}
		if err := a.emailSender.SendReport(report); err != nil {
			log.Printf("Warning: failed to send email report: %v", err)
		}
	}

	log.Printf("Batch complete: %s", metrics.GetSummary())
	return metrics, nil
}

func (a *Agent) lookupVideoInfo(ctx context.Context, videoID string) *models.VideoInfo {
	if a.metadata != nil {
		return a.metadata.GetVideoInfo(ctx, videoID)
	}
	return &models.VideoInfo{
		ID:           videoID,
		URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
		Title:        models.UnknownTitle,
		ChannelTitle: models.UnknownChannel,
	}
}

func (a *Agent) printAnalysis(info *models.VideoInfo, analysis *models.AdAnalysis) {
	fmt.Fprintf(a.out, "\nVideo: %s (%s)\n", info.Title, info.ChannelTitle)
	fmt.Fprintf(a.out, "  %s\n", info.URL)
	fmt.Fprintf(a.out, "Product: %s\n", analysis.ProductName)
	fmt.Fprintf(a.out, "Ad segment: %s - %s\n", analysis.StartTime, analysis.EndTime)
	fmt.Fprintf(a.out, "Overall score: %d/10\n", analysis.OverallScore)
	fmt.Fprintf(a.out, "  %s\n", analysis.OverallSummary)
	for _, metric := range analysis.OrderedMetrics() {
		fmt.Fprintf(a.out, "  %s: %d/10\n", metric.DisplayName, metric.Score)
		fmt.Fprintf(a.out, "    %s\n", metric.Explanation)
	}
}
