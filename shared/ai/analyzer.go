package ai

import (
	"context"
	"fmt"
	"strings"

	"ad-analyzer/internal/models"
	"ad-analyzer/shared/config"
	"ad-analyzer/shared/timefmt"

	"google.golang.org/genai"
)

// Analyzer sends a formatted transcript to Gemini and parses the
// structured ad-quality assessment out of the response.
type Analyzer struct {
	client    *genai.Client
	model     string
	timeStyle timefmt.Style
}

func NewAnalyzer(ctx context.Context, cfg *config.Config) (*Analyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	style, err := timefmt.ParseStyle(cfg.Transcript.TimeFormat)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client:    client,
		model:     cfg.AI.Model,
		timeStyle: style,
	}, nil
}

// AnalyzeTranscript asks the model for an ad-quality assessment of the
// transcript. Decoding is requested at zero temperature so repeated
// calls on the same transcript tend to converge.
func (a *Analyzer) AnalyzeTranscript(ctx context.Context, t *models.Transcript) (*models.AdAnalysis, error) {
	if t == nil || len(t.Entries) == 0 {
		return nil, fmt.Errorf("transcript cannot be empty")
	}

	prompt := a.buildAdPrompt(t)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, genCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze transcript for %s: %w", t.VideoID, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("no analysis response received for %s", t.VideoID)
	}

	analysis, err := a.parseAdResponse(responseText)
	if err != nil {
		return nil, fmt.Errorf("bad analysis response for %s: %w", t.VideoID, err)
	}
	return analysis, nil
}

// formatTranscript renders one "[clock] text" line per caption entry.
func (a *Analyzer) formatTranscript(t *models.Transcript) string {
	lines := make([]string, len(t.Entries))
	for i, entry := range t.Entries {
		lines[i] = fmt.Sprintf("[%s] %s", timefmt.Format(a.timeStyle, entry.Start), entry.Text)
	}
	return strings.Join(lines, "\n")
}

func (a *Analyzer) buildAdPrompt(t *models.Transcript) string {
	return fmt.Sprintf(`You are an expert in analyzing YouTube ad integrations.

Extract the advertisement segment from the timestamped transcript below and evaluate its quality:
- Identify the ad start and end timestamps, in the same clock format the transcript uses.
- Detect the product name being advertised.
- Provide a single overall ad score (integer 0-10) with a one-line justification.
- Score each of these five metrics (integer 0-10) with a 1-2 line explanation:
  1. Ad Naturalness
  2. Persuasiveness
  3. Trustworthiness
  4. Ad Length & Placement
  5. Engagement

Transcript:
%s

Respond with only a single JSON object matching this schema. No prose before or after, no markdown fences:
{
  "product_name": "Detected Product",
  "start_time": "MM:SS",
  "end_time": "MM:SS",
  "overall_score": 0-10,
  "overall_summary": "One-line summary for overall score",
  "ad_naturalness": {"score": 0-10, "explanation": "1-2 line reason"},
  "persuasiveness": {"score": 0-10, "explanation": "1-2 line reason"},
  "trustworthiness": {"score": 0-10, "explanation": "1-2 line reason"},
  "ad_length_placement": {"score": 0-10, "explanation": "1-2 line reason"},
  "engagement": {"score": 0-10, "explanation": "1-2 line reason"}
}`, a.formatTranscript(t))
}
