package domain

import "time"

// AnalysisDataSource is credited on every risk analysis.
const AnalysisDataSource = "Tổng cục Khí tượng Thủy văn Việt Nam"

// AnalysisLocation is the point an analysis was computed for.
type AnalysisLocation struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Region Region  `json:"region"`
}

// RiskAnalysis is one refresh cycle's risk report. It is built once and
// never modified afterwards.
type RiskAnalysis struct {
	Location         AnalysisLocation  `json:"location"`
	OverallScore     int               `json:"overall_score"`
	Factors          RiskScoreSet      `json:"factors"`
	HistoricalEvents []HistoricalEvent `json:"historical_events"`
	LastUpdated      time.Time         `json:"last_updated"`
	DataSource       string            `json:"data_source"`
}

// Aggregate composes the region classifier, the seasonal risk model and
// the history generator into one report. The month is taken from now in
// its own location, so callers pick the display timezone.
func Aggregate(lat, lon float64, now time.Time, rng RandomSource) RiskAnalysis {
	region := ClassifyRegion(lat, lon)
	risk := SeasonalRisk(now.Month())

	return RiskAnalysis{
		Location:         AnalysisLocation{Lat: lat, Lon: lon, Region: region},
		OverallScore:     risk.Overall(),
		Factors:          risk,
		HistoricalEvents: GenerateHistory(region, rng, now),
		LastUpdated:      now,
		DataSource:       AnalysisDataSource,
	}
}

// Evaluation bundles an analysis with the alerts synthesized alongside it.
type Evaluation struct {
	Analysis RiskAnalysis  `json:"analysis"`
	Alerts   []ActiveAlert `json:"alerts"`
}

// Evaluate runs the alert synthesizer followed by the aggregator, matching
// the order a warning panel requests them in.
func Evaluate(lat, lon float64, now time.Time, rng RandomSource) Evaluation {
	alerts := SynthesizeAlerts(lat, lon, SeasonalRisk(now.Month()), rng, now)
	if alerts == nil {
		alerts = []ActiveAlert{}
	}
	return Evaluation{
		Analysis: Aggregate(lat, lon, now, rng),
		Alerts:   alerts,
	}
}
