package domain

import (
	"slices"
	"time"
)

const (
	maxHistoricalEvents = 3
	historyLookbackDays = 30

	// DateLayout renders calendar dates in day/month/year order.
	DateLayout = "02/01/2006"
)

// HistoricalEvent is a synthetic past hazard occurrence.
type HistoricalEvent struct {
	Type     HazardKind `json:"type"`
	Name     string     `json:"name"`
	Severity string     `json:"severity"`
	Impact   string     `json:"impact"`
	Date     time.Time  `json:"date"`
	Region   Region     `json:"region"`
}

// DisplayDate formats the occurrence date for the display layer.
func (e HistoricalEvent) DisplayDate() string {
	return e.Date.Format(DateLayout)
}

type eventTemplate struct {
	kind     HazardKind
	name     string
	severity string
	impact   string
}

var historicalTemplates = []eventTemplate{
	{kind: HazardFlood, name: "Lũ lụt", severity: SeverityModerate, impact: "Nhẹ"},
	{kind: HazardStorm, name: "Bão số 3", severity: SeverityHigh, impact: SeverityModerate},
	{kind: HazardHeavyRain, name: "Mưa lớn", severity: SeverityLow, impact: "Nhẹ"},
}

// GenerateHistory produces 0–3 events from the last 30 days, newest first.
// Repeated templates are expected; there is no deduplication.
//
// Draw order from rng: count, then per event a template pick and a day
// offset.
func GenerateHistory(region Region, rng RandomSource, now time.Time) []HistoricalEvent {
	count := intn(rng, maxHistoricalEvents+1)
	events := make([]HistoricalEvent, 0, count)

	for range count {
		tmpl := historicalTemplates[intn(rng, len(historicalTemplates))]
		daysAgo := intn(rng, historyLookbackDays) + 1
		events = append(events, HistoricalEvent{
			Type:     tmpl.kind,
			Name:     tmpl.name,
			Severity: tmpl.severity,
			Impact:   tmpl.impact,
			Date:     now.AddDate(0, 0, -daysAgo),
			Region:   region,
		})
	}

	slices.SortStableFunc(events, func(a, b HistoricalEvent) int {
		return b.Date.Compare(a.Date)
	})
	return events
}
