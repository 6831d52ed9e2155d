package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"ad-analyzer/internal/models"
	"ad-analyzer/shared/timefmt"
)

// MalformedResponseError reports model output that did not decode as
// JSON. Raw carries the unmodified response text for diagnosis.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v (raw response: %s)", e.Err, e.Raw)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IncompleteResponseError reports valid JSON missing required fields.
type IncompleteResponseError struct {
	Raw     string
	Missing []string
}

func (e *IncompleteResponseError) Error() string {
	return fmt.Sprintf("model response missing required fields: %s", strings.Join(e.Missing, ", "))
}

var requiredFields = []string{
	"product_name",
	"start_time",
	"end_time",
	"overall_score",
	"overall_summary",
}

// parseAdResponse decodes the model's raw text into an AdAnalysis.
// Surrounding whitespace and a Markdown code fence (with or without a
// language tag) are stripped before decoding. Numeric start/end
// timestamps are normalized to clock strings, and every score is
// clamped to [0, 10].
func (a *Analyzer) parseAdResponse(raw string) (*models.AdAnalysis, error) {
	text := stripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	var missing []string
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	for _, key := range models.MetricNames {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteResponseError{Raw: raw, Missing: missing}
	}

	analysis := &models.AdAnalysis{
		StartTime: a.normalizeTimestamp(fields["start_time"]),
		EndTime:   a.normalizeTimestamp(fields["end_time"]),
		Metrics:   make(map[string]models.MetricScore, len(models.MetricNames)),
	}

	if err := json.Unmarshal(fields["product_name"], &analysis.ProductName); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("product_name: %w", err)}
	}
	if err := json.Unmarshal(fields["overall_summary"], &analysis.OverallSummary); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("overall_summary: %w", err)}
	}

	var overall float64
	if err := json.Unmarshal(fields["overall_score"], &overall); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("overall_score: %w", err)}
	}
	analysis.OverallScore = clampScore(overall)

	for _, name := range models.MetricNames {
		var metric struct {
			Score       float64 `json:"score"`
			Explanation string  `json:"explanation"`
		}
		if err := json.Unmarshal(fields[name], &metric); err != nil {
			return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("%s: %w", name, err)}
		}
		analysis.Metrics[name] = models.MetricScore{
			Score:       clampScore(metric.Score),
			Explanation: metric.Explanation,
		}
	}

	return analysis, nil
}

// normalizeTimestamp accepts either a clock string (passed through
// as-is) or raw numeric seconds, which the model sometimes returns
// despite instructions.
func (a *Analyzer) normalizeTimestamp(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return timefmt.Format(a.timeStyle, seconds)
	}
	return timefmt.NotAvailable
}

func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 10 {
		return 10
	}
	return rounded
}

// stripCodeFence removes a surrounding Markdown code fence, with or
// without a language tag, from the model's response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
