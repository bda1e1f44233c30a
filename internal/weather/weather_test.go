package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script replays values in order and fails the test when exhausted.
func script(t *testing.T, values ...float64) domain.RandomSource {
	t.Helper()
	i := 0
	return domain.RandomFunc(func() float64 {
		require.Less(t, i, len(values), "random source exhausted")
		v := values[i]
		i++
		return v
	})
}

var zero = domain.RandomFunc(func() float64 { return 0 })

func TestCurrentConditions_SummerAfternoon(t *testing.T) {
	now := time.Date(2026, time.July, 14, 14, 0, 0, 0, time.UTC)
	rng := script(t, 0.9, 0.5, 0.5, 0, 0.99, 0.5, 0.5, 0.5)

	got := CurrentConditions("Hà Nội, Việt Nam", 21.03, 105.85, now, rng)

	assert.Equal(t, Current{
		Location:    "Hà Nội, Việt Nam",
		Temperature: 34,
		Condition:   "Rainy",
		ConditionVi: "Mưa",
		Humidity:    80,
		WindSpeed:   5,
		Visibility:  12,
		Pressure:    1013,
		UVIndex:     5,
		FeelsLike:   35,
		Coordinates: domain.Geo{Lat: 21.03, Lon: 105.85},
	}, got)
}

func TestCurrentConditions_WinterNight(t *testing.T) {
	now := time.Date(2026, time.January, 10, 2, 0, 0, 0, time.UTC)
	// No rain roll outside summer and no UV draw at night.
	rng := script(t, 0, 0, 0.99, 0, 0, 0)

	got := CurrentConditions("x", 0, 0, now, rng)

	assert.Equal(t, 14, got.Temperature)
	assert.Equal(t, "Partly Cloudy", got.Condition)
	assert.Equal(t, "Có mây", got.ConditionVi)
	assert.Equal(t, 60, got.Humidity)
	assert.Equal(t, 19, got.WindSpeed)
	assert.Equal(t, 8, got.Visibility)
	assert.Equal(t, 1003, got.Pressure)
	assert.Zero(t, got.UVIndex)
	assert.Equal(t, 12, got.FeelsLike)
}

func TestCurrentConditions_HourBands(t *testing.T) {
	tests := []struct {
		hour int
		want int
	}{
		{hour: 6, want: 22},
		{hour: 10, want: 22},
		{hour: 11, want: 20},
		{hour: 12, want: 27},
		{hour: 16, want: 27},
		{hour: 17, want: 20},
		{hour: 18, want: 24},
		{hour: 22, want: 24},
		{hour: 23, want: 20},
		{hour: 0, want: 20},
	}
	for _, tt := range tests {
		now := time.Date(2026, time.March, 3, tt.hour, 0, 0, 0, time.UTC)
		got := CurrentConditions("x", 0, 0, now, zero)
		assert.Equal(t, tt.want, got.Temperature, "hour %d", tt.hour)
	}
}

func TestCurrentConditions_Ranges(t *testing.T) {
	rng := domain.NewSeededRandom(7)
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range 500 {
		now := start.Add(time.Duration(i) * 17 * time.Hour)
		c := CurrentConditions("x", 0, 0, now, rng)
		assert.GreaterOrEqual(t, c.Humidity, 30)
		assert.LessOrEqual(t, c.Humidity, 95)
		assert.GreaterOrEqual(t, c.WindSpeed, 5)
		assert.LessOrEqual(t, c.WindSpeed, 19)
		assert.GreaterOrEqual(t, c.Visibility, 8)
		assert.LessOrEqual(t, c.Visibility, 12)
		assert.GreaterOrEqual(t, c.Pressure, 1003)
		assert.LessOrEqual(t, c.Pressure, 1022)
		assert.LessOrEqual(t, c.UVIndex, 8)
	}
}

func TestForecast(t *testing.T) {
	// 18 October 2026 is a Sunday.
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

	days := Forecast(now, zero)

	require.Len(t, days, ForecastDays)
	assert.Equal(t, Day{
		Day:         "Hôm nay",
		Date:        "18/10/2026",
		High:        24,
		Low:         19,
		Condition:   "Nắng",
		ConditionEn: "Sunny",
		Icon:        "sunny",
		Humidity:    60,
		WindSpeed:   5,
	}, days[0])

	var names []string
	for _, d := range days {
		names = append(names, d.Day)
	}
	assert.Equal(t, []string{"Hôm nay", "T2", "T3", "T4", "T5", "T6", "T7"}, names)
	assert.Equal(t, "24/10/2026", days[6].Date)
}

func TestForecast_DrawOrder(t *testing.T) {
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	values := []float64{0.99, 0.8, 0.5, 0.5, 0.5, 0.5}
	for range ForecastDays - 1 {
		values = append(values, 0, 0, 0, 0, 0, 0)
	}

	day := Forecast(now, script(t, values...))[0]

	assert.Equal(t, 33, day.High)
	assert.Equal(t, 22, day.Low)
	assert.Equal(t, "rainy", day.Icon)
	assert.Equal(t, 75, day.Humidity)
	assert.Equal(t, 12, day.WindSpeed)
}

type stubGeocoder struct {
	result domain.GeocodingResult
	err    error
}

func (s stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	return s.result, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerator_UsesDisplayTimezone(t *testing.T) {
	// 23:30 UTC is 06:30 the next morning in Vietnam.
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.July, 14, 23, 30, 0, 0, time.UTC))
	ict := time.FixedZone("ICT", 7*60*60)

	local := NewGenerator(zero, clock, ict, nil, discardLogger()).Current(context.Background(), 21.03, 105.85)
	assert.Equal(t, 26, local.Temperature)
	assert.Equal(t, 1, local.UVIndex)
	assert.Equal(t, "Hà Nội, Việt Nam", local.Location)

	utc := NewGenerator(zero, clock, nil, nil, discardLogger()).Current(context.Background(), 21.03, 105.85)
	assert.Equal(t, 24, utc.Temperature)
	assert.Zero(t, utc.UVIndex)

	days := NewGenerator(zero, clock, ict, nil, discardLogger()).Forecast()
	assert.Equal(t, "15/07/2026", days[0].Date)
}

func TestGenerator_PlaceNameFromGeocoder(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.July, 14, 9, 0, 0, 0, time.UTC))

	g := NewGenerator(zero, clock, nil, stubGeocoder{result: domain.GeocodingResult{FormattedAddress: "Huế, Thừa Thiên Huế, Việt Nam"}}, discardLogger())
	assert.Equal(t, "Huế, Thừa Thiên Huế, Việt Nam", g.Current(context.Background(), 16.46, 107.59).Location)

	failing := NewGenerator(zero, clock, nil, stubGeocoder{err: errors.New("timeout")}, discardLogger())
	assert.Equal(t, "16.46°N, 107.59°E", failing.Current(context.Background(), 16.46, 107.59).Location)
}
