package fixture_test

import (
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/fixture"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vietnam(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	return loc
}

func TestGenerate_Grid(t *testing.T) {
	f := fixture.Generate(fixture.Options{Seed: 42, Year: 2026, Location: vietnam(t)})

	require.Len(t, f.Cases, len(fixture.Cities)*12)
	assert.Equal(t, "Asia/Ho_Chi_Minh", f.Timezone)

	first := f.Cases[0]
	assert.Equal(t, "Hà Nội", first.City.Name)
	assert.Equal(t, time.January, first.At.Month())
	assert.Equal(t, 15, first.At.Day())
	assert.Equal(t, 9, first.At.Hour())
	assert.Equal(t, 37, first.Evaluation.Analysis.OverallScore)

	july := f.Cases[6]
	assert.Equal(t, time.July, july.At.Month())
	assert.Equal(t, 57, july.Evaluation.Analysis.OverallScore)

	last := f.Cases[len(f.Cases)-1]
	assert.Equal(t, "Singapore", last.City.Name)
	assert.Equal(t, domain.RegionUnknown, last.Evaluation.Analysis.Location.Region)
}

func TestGenerate_Reproducible(t *testing.T) {
	opts := fixture.Options{Seed: 7, Year: 2025, Location: time.UTC}

	if diff := cmp.Diff(fixture.Generate(opts), fixture.Generate(opts)); diff != "" {
		t.Errorf("same options produced different fixtures (-a +b):\n%s", diff)
	}
}

func TestGenerate_DefaultsToUTC(t *testing.T) {
	f := fixture.Generate(fixture.Options{Seed: 1, Year: 2026})
	assert.Equal(t, "UTC", f.Timezone)
	assert.Equal(t, time.UTC, f.Cases[0].At.Location())
}

func TestWriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "evaluations.json")
	want := fixture.Generate(fixture.Options{Seed: 3, Year: 2026, Location: vietnam(t)})

	require.NoError(t, fixture.Write(path, want))
	got, err := fixture.Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fixture changed across write/load (-want +got):\n%s", diff)
	}

	opts, err := got.Options()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), opts.Seed)
	assert.Equal(t, 2026, opts.Year)
	assert.Equal(t, "Asia/Ho_Chi_Minh", opts.Location.String())
}

func TestLoad_Errors(t *testing.T) {
	_, err := fixture.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = fixture.File{Timezone: "Mars/Olympus"}.Options()
	require.ErrorContains(t, err, "Mars/Olympus")
}
