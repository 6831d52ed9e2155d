package models

// Metric names as they appear in the model's JSON response.
const (
	MetricAdNaturalness     = "ad_naturalness"
	MetricPersuasiveness    = "persuasiveness"
	MetricTrustworthiness   = "trustworthiness"
	MetricAdLengthPlacement = "ad_length_placement"
	MetricEngagement        = "engagement"
)

// MetricNames lists the five sub-metrics in display order.
var MetricNames = []string{
	MetricAdNaturalness,
	MetricPersuasiveness,
	MetricTrustworthiness,
	MetricAdLengthPlacement,
	MetricEngagement,
}

var metricDisplayNames = map[string]string{
	MetricAdNaturalness:     "Ad Naturalness",
	MetricPersuasiveness:    "Persuasiveness",
	MetricTrustworthiness:   "Trustworthiness",
	MetricAdLengthPlacement: "Ad Length & Placement",
	MetricEngagement:        "Engagement",
}

// MetricDisplayName returns the human-readable name for a metric key.
func MetricDisplayName(name string) string {
	if display, ok := metricDisplayNames[name]; ok {
		return display
	}
	return name
}

// MetricScore is one sub-metric judgment from the model.
type MetricScore struct {
	Score       int    `json:"score"` // 0-10
	Explanation string `json:"explanation"`
}

// AdAnalysis is the structured quality assessment of the advertisement
// segment found in one video's transcript. It is produced fresh per
// request and never cached.
type AdAnalysis struct {
	ProductName    string                 `json:"product_name"`
	StartTime      string                 `json:"start_time"`
	EndTime        string                 `json:"end_time"`
	OverallScore   int                    `json:"overall_score"` // 0-10
	OverallSummary string                 `json:"overall_summary"`
	Metrics        map[string]MetricScore `json:"metrics"`
}

// NamedMetric pairs a metric with its display name for rendering.
type NamedMetric struct {
	Name        string
	DisplayName string
	MetricScore
}

// OrderedMetrics returns the sub-metrics in canonical display order.
// Metrics absent from the analysis are skipped.
func (a *AdAnalysis) OrderedMetrics() []NamedMetric {
	var out []NamedMetric
	for _, name := range MetricNames {
		ms, ok := a.Metrics[name]
		if !ok {
			continue
		}
		out = append(out, NamedMetric{
			Name:        name,
			DisplayName: MetricDisplayName(name),
			MetricScore: ms,
		})
	}
	return out
}
