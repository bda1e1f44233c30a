package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2026, time.July, 14, 14, 5, 9, 0, time.UTC)

func testAnalysis(t *testing.T) domain.RiskAnalysis {
	t.Helper()
	a := domain.Aggregate(21.03, 105.85, ts, domain.RandomFunc(func() float64 { return 0 }))
	a.HistoricalEvents = []domain.HistoricalEvent{
		{Type: domain.HazardStorm, Name: "Bão số 3", Severity: "Cao", Impact: "Trung bình", Date: ts.AddDate(0, 0, -4), Region: domain.RegionNorth},
	}
	return a
}

func testAlert() domain.ActiveAlert {
	return domain.ActiveAlert{
		Type:            domain.HazardHeavyRain,
		Title:           "Cảnh báo mưa lớn",
		Description:     "Dự báo có mưa to đến rất to trong 6-12 giờ tới.",
		Severity:        "Trung bình",
		StartTime:       "14:05:09",
		EndTime:         "20:05:09",
		Area:            "Miền Bắc",
		Source:          domain.AlertSource,
		Confidence:      82,
		Recommendations: []string{"Hạn chế di chuyển không cần thiết", "Chuẩn bị ô, áo mưa"},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("table")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
}

func TestTableRenderer_Analysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(FormatTable).Analysis(&buf, testAnalysis(t)))
	out := buf.String()

	assert.Contains(t, out, "Region:  Miền Bắc (21.0300, 105.8500)")
	assert.Contains(t, out, "Overall: 57/100 (Trung bình)")
	assert.Contains(t, out, "Updated: 14:05:09 14/07/2026")
	assert.Regexp(t, `heavy_rain\s+85\s+Cực cao`, out)
	assert.Regexp(t, `drought\s+10\s+Rất thấp`, out)
	assert.Regexp(t, `10/07/2026\s+Bão số 3\s+Cao\s+Trung bình`, out)
}

func TestTableRenderer_AnalysisWithoutHistory(t *testing.T) {
	a := testAnalysis(t)
	a.HistoricalEvents = nil

	var buf bytes.Buffer
	require.NoError(t, New(FormatTable).Analysis(&buf, a))
	assert.Contains(t, buf.String(), "No events in the last 30 days.")
}

func TestTableRenderer_Alerts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(FormatTable).Alerts(&buf, []domain.ActiveAlert{testAlert()}))
	out := buf.String()

	assert.Regexp(t, `HEAVY_RAIN\s+Cảnh báo mưa lớn\s+Trung bình\s+14:05:09-20:05:09\s+Miền Bắc\s+82%`, out)
	assert.Contains(t, out, "--- Cảnh báo mưa lớn ---")
	assert.Contains(t, out, "  2. Chuẩn bị ô, áo mưa")

	buf.Reset()
	require.NoError(t, New(FormatTable).Alerts(&buf, nil))
	assert.Equal(t, "No active alerts.\n", buf.String())
}

func TestTableRenderer_Weather(t *testing.T) {
	f := Forecast{
		Current: weather.Current{Location: "Hà Nội, Việt Nam", Temperature: 34, FeelsLike: 35, ConditionVi: "Mưa", Humidity: 80, WindSpeed: 5, Visibility: 12, Pressure: 1013, UVIndex: 5},
		Days:    []weather.Day{{Day: "Hôm nay", Date: "14/07/2026", High: 33, Low: 22, Condition: "Mưa", Humidity: 75, WindSpeed: 12}},
	}

	var buf bytes.Buffer
	require.NoError(t, New(FormatTable).Weather(&buf, f))
	out := buf.String()

	assert.Contains(t, out, "34°C (feels like 35°C), Mưa")
	assert.Contains(t, out, "Pressure 1013 hPa  UV 5")
	assert.Regexp(t, `Hôm nay\s+14/07/2026\s+33°\s+22°\s+Mưa\s+75%\s+12`, out)
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(FormatJSON).Alerts(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())

	buf.Reset()
	require.NoError(t, New(FormatJSON).Analysis(&buf, testAnalysis(t)))
	var decoded domain.RiskAnalysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 57, decoded.OverallScore)
	assert.Equal(t, 85, decoded.Factors.Score(domain.HazardHeavyRain))
	require.Len(t, decoded.HistoricalEvents, 1)
}
