package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hanoiLat = 21.03
	hanoiLon = 105.85
)

var julyAfternoon = time.Date(2026, time.July, 14, 14, 5, 9, 0, time.UTC)

func TestSynthesizeAlerts_RollAtOrBelowThresholdIsEmpty(t *testing.T) {
	risk := SeasonalRisk(time.July)
	for _, roll := range []float64{0, 0.1, 0.5, 0.69, 0.7} {
		rng := script(roll, 0, 0)
		alerts := SynthesizeAlerts(hanoiLat, hanoiLon, risk, rng, julyAfternoon)
		assert.Empty(t, alerts, "roll %v", roll)
		assert.Equal(t, 1, rng.next, "no draws after a failed roll")
	}
}

func TestSynthesizeAlerts_RainySeasonPicks(t *testing.T) {
	risk := SeasonalRisk(time.July)

	tests := []struct {
		name     string
		pick     float64 // scaled over 5 candidates
		wantKind HazardKind
		wantSev  string
		wantNone bool
	}{
		{name: "flood", pick: 0.0, wantKind: HazardFlood, wantSev: SeverityModerate},
		{name: "storm", pick: 0.25, wantKind: HazardStorm, wantSev: SeverityDangerous},
		{name: "thunderstorm has no template", pick: 0.45, wantNone: true},
		{name: "heavy rain", pick: 0.65, wantKind: HazardHeavyRain, wantSev: SeverityModerate},
		{name: "landslide has no template", pick: 0.85, wantNone: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := SynthesizeAlerts(hanoiLat, hanoiLon, risk, script(0.95, tt.pick, 0), julyAfternoon)
			if tt.wantNone {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.wantKind, alerts[0].Type)
			assert.Equal(t, tt.wantSev, alerts[0].Severity)
		})
	}
}

func TestSynthesizeAlerts_DrySeason(t *testing.T) {
	risk := SeasonalRisk(time.January)

	alerts := SynthesizeAlerts(10.78, 106.7, risk, script(0.8, 0.1, 0), julyAfternoon)
	require.Len(t, alerts, 1)
	assert.Equal(t, HazardHeatWave, alerts[0].Type)
	assert.Equal(t, "Cảnh báo nắng nóng", alerts[0].Title)
	assert.Equal(t, "Miền Nam", alerts[0].Area)

	alerts = SynthesizeAlerts(10.78, 106.7, risk, script(0.8, 0.6, 0), julyAfternoon)
	assert.Empty(t, alerts, "drought has no template")
}

func TestSynthesizeAlerts_FieldsPopulated(t *testing.T) {
	risk := SeasonalRisk(time.July)
	alerts := SynthesizeAlerts(hanoiLat, hanoiLon, risk, script(0.95, 0.0, 0.99), julyAfternoon)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, "Cảnh báo ngập lụt", a.Title)
	assert.NotEmpty(t, a.Description)
	assert.Equal(t, "14:05:09", a.StartTime)
	assert.Equal(t, "20:05:09", a.EndTime)
	assert.Equal(t, "Miền Bắc", a.Area)
	assert.Equal(t, AlertSource, a.Source)
	assert.Equal(t, 94, a.Confidence)
	assert.Len(t, a.Recommendations, 4)
}

func TestSynthesizeAlerts_FloodSeverityThreshold(t *testing.T) {
	scores := SeasonalRisk(time.July).Map()
	scores[HazardFlood] = 71
	risk, err := NewRiskScoreSet(scores)
	require.NoError(t, err)

	alerts := SynthesizeAlerts(0, 0, risk, script(0.95, 0.0, 0), julyAfternoon)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityDangerous, alerts[0].Severity)
	assert.Equal(t, "Khu vực hiện tại", alerts[0].Area)
}

func TestSynthesizeAlerts_NoCandidates(t *testing.T) {
	scores := SeasonalRisk(time.January).Map()
	for k := range scores {
		scores[k] = 50
	}
	risk, err := NewRiskScoreSet(scores)
	require.NoError(t, err)

	assert.Empty(t, SynthesizeAlerts(hanoiLat, hanoiLon, risk, script(0.99, 0, 0), julyAfternoon))
}

func TestSynthesizeAlerts_NeverSurfacesUntemplatedKinds(t *testing.T) {
	rng := NewSeededRandom(42)
	for _, month := range []time.Month{time.January, time.July} {
		risk := SeasonalRisk(month)
		for range 2000 {
			alerts := SynthesizeAlerts(hanoiLat, hanoiLon, risk, rng, julyAfternoon)
			require.LessOrEqual(t, len(alerts), 1)
			for _, a := range alerts {
				assert.True(t, HasAlertTemplate(a.Type), "unexpected alert kind %s", a.Type)
				assert.GreaterOrEqual(t, a.Confidence, 75)
				assert.Less(t, a.Confidence, 95)
			}
		}
	}
}

func TestSynthesizeAlerts_RecommendationsAreCopies(t *testing.T) {
	risk := SeasonalRisk(time.July)
	first := SynthesizeAlerts(hanoiLat, hanoiLon, risk, script(0.95, 0, 0), julyAfternoon)
	require.Len(t, first, 1)
	first[0].Recommendations[0] = "changed"

	second := SynthesizeAlerts(hanoiLat, hanoiLon, risk, script(0.95, 0, 0), julyAfternoon)
	require.Len(t, second, 1)
	assert.Equal(t, "Di chuyển đến nơi cao hơn", second[0].Recommendations[0])
}
