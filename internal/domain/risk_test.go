package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRandom replays fixed draws and then returns 0 forever.
type scriptedRandom struct {
	values []float64
	next   int
}

func script(values ...float64) *scriptedRandom {
	return &scriptedRandom{values: values}
}

func (s *scriptedRandom) Float64() float64 {
	if s.next >= len(s.values) {
		return 0
	}
	v := s.values[s.next]
	s.next++
	return v
}

func TestSeasonalRisk_EveryMonthComplete(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		risk := SeasonalRisk(m)
		scores := risk.Map()
		require.Len(t, scores, 7, "month %s", m)
		for _, k := range HazardKinds() {
			v, ok := scores[k]
			require.True(t, ok, "month %s missing %s", m, k)
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestSeasonalRisk_Regimes(t *testing.T) {
	rainy := SeasonalRisk(time.May)
	for m := time.June; m <= time.October; m++ {
		assert.Equal(t, rainy, SeasonalRisk(m), "month %s", m)
	}

	dry := SeasonalRisk(time.January)
	for _, m := range []time.Month{time.February, time.March, time.April, time.November, time.December} {
		assert.Equal(t, dry, SeasonalRisk(m), "month %s", m)
	}

	assert.NotEqual(t, rainy, dry)
	assert.Equal(t, 85, rainy.Score(HazardHeavyRain))
	assert.Equal(t, 10, rainy.Score(HazardDrought))
	assert.Equal(t, 70, dry.Score(HazardHeatWave))
	assert.Equal(t, 20, dry.Score(HazardFlood))
}

func TestRiskScoreSet_Overall(t *testing.T) {
	dry := SeasonalRisk(time.December)
	assert.InDelta(t, 37.142857, dry.Mean(), 1e-5)
	assert.Equal(t, 37, dry.Overall())

	rainy := SeasonalRisk(time.July)
	assert.Equal(t, 57, rainy.Overall())
}

func TestRiskScoreSet_Above(t *testing.T) {
	rainy := SeasonalRisk(time.July)
	assert.Equal(t, []HazardKind{HazardFlood, HazardStorm, HazardThunderstorm, HazardHeavyRain, HazardLandslide}, rainy.Above(50))

	dry := SeasonalRisk(time.January)
	assert.Equal(t, []HazardKind{HazardHeatWave, HazardDrought}, dry.Above(50))
}

func TestNewRiskScoreSet_Validation(t *testing.T) {
	full := SeasonalRisk(time.July).Map()

	t.Run("missing hazard", func(t *testing.T) {
		partial := SeasonalRisk(time.July).Map()
		delete(partial, HazardDrought)
		_, err := NewRiskScoreSet(partial)
		require.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		bad := SeasonalRisk(time.July).Map()
		bad[HazardFlood] = 101
		_, err := NewRiskScoreSet(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flood")
	})

	t.Run("unknown hazard", func(t *testing.T) {
		bad := SeasonalRisk(time.July).Map()
		delete(bad, HazardFlood)
		bad["tsunami"] = 5
		_, err := NewRiskScoreSet(bad)
		require.Error(t, err)
	})

	t.Run("complete", func(t *testing.T) {
		s, err := NewRiskScoreSet(full)
		require.NoError(t, err)
		assert.Equal(t, SeasonalRisk(time.July), s)
	})
}

func TestRiskScoreSet_JSON(t *testing.T) {
	data, err := json.Marshal(SeasonalRisk(time.January))
	require.NoError(t, err)
	assert.JSONEq(t, `{"flood":20,"storm":25,"thunderstorm":30,"heavy_rain":25,"heat_wave":70,"landslide":30,"drought":60}`, string(data))

	var decoded RiskScoreSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SeasonalRisk(time.January), decoded)

	require.Error(t, json.Unmarshal([]byte(`{"flood":20}`), &decoded))
}

func TestParseHazardKind(t *testing.T) {
	k, err := ParseHazardKind("heavy_rain")
	require.NoError(t, err)
	assert.Equal(t, HazardHeavyRain, k)

	_, err = ParseHazardKind("volcano")
	require.Error(t, err)
}

func TestClassifyRegion(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     Region
	}{
		{"hanoi", 21.03, 105.85, RegionNorth},
		{"north interior", 21, 106, RegionNorth},
		{"shared edge resolves north", 20, 106, RegionNorth},
		{"lat 20 outside north lon", 20, 109, RegionCentral},
		{"da nang", 16.05, 108.2, RegionCentral},
		{"shared edge resolves central", 14, 106, RegionCentral},
		{"ho chi minh city", 10.78, 106.7, RegionSouth},
		{"south corner", 8, 104, RegionSouth},
		{"origin", 0, 0, RegionUnknown},
		{"just outside north", 24.01, 105, RegionUnknown},
		{"west of central", 16, 104.9, RegionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRegion(tt.lat, tt.lon))
		})
	}
}

func TestRegion_Label(t *testing.T) {
	assert.Equal(t, "Miền Bắc", RegionNorth.Label())
	assert.Equal(t, "Miền Trung", RegionCentral.Label())
	assert.Equal(t, "Miền Nam", RegionSouth.Label())
	assert.Equal(t, "Khu vực hiện tại", RegionUnknown.Label())
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: 100, want: "Cực cao"},
		{score: 80, want: "Cực cao"},
		{score: 79, want: "Cao"},
		{score: 60, want: "Cao"},
		{score: 57, want: "Trung bình"},
		{score: 40, want: "Trung bình"},
		{score: 37, want: "Thấp"},
		{score: 20, want: "Thấp"},
		{score: 19, want: "Rất thấp"},
		{score: 0, want: "Rất thấp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevel(tt.score), "score %d", tt.score)
	}
}
