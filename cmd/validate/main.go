// Command validate performs integrity checks on an evaluation fixture written
// by genmock. It verifies grid coverage, risk model output, alert synthesis,
// historical events, and that the fixture regenerates from its recorded seed.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/mock/evaluations_2026.json
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/fixture"
	"github.com/google/go-cmp/cmp"
)

const (
	maxAlerts       = 1
	maxHistory      = 3
	lookbackDays    = 30
	alertValidity   = 6 * time.Hour
	minConfidence   = 75
	maxConfidence   = 94
	candidateCutoff = 50
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("fixture", "", "path to the evaluation fixture")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*path); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== Evaluation Fixture Validation ===")
	fmt.Println()

	f, err := fixture.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	phases := validateAll(f)

	if !report(phases) {
		fmt.Println("\nValidation FAILED.")
		return 1
	}
	fmt.Printf("\nAll validations passed (%d cases).\n", len(f.Cases))
	return 0
}

func validateAll(f fixture.File) []*phase {
	return []*phase{
		validateCoverage(f.Cases),
		validateRiskModel(f.Cases),
		validateAlerts(f.Cases),
		validateHistory(f.Cases),
		validateReproducible(f),
	}
}

func report(phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}
	return allPassed
}

func caseName(c *fixture.Case) string {
	return fmt.Sprintf("%s %s", c.City.Name, c.At.Format("2006-01"))
}

// ── Phase 1: grid coverage ──

func validateCoverage(cases []fixture.Case) *phase {
	p := &phase{name: "Phase 1: City × month coverage"}

	if want := len(fixture.Cities) * 12; len(cases) != want {
		p.errorf("case count: got %d, want %d", len(cases), want)
	}

	seen := make(map[string]map[time.Month]bool)
	for i := range cases {
		c := &cases[i]
		months, ok := seen[c.City.Name]
		if !ok {
			months = make(map[time.Month]bool)
			seen[c.City.Name] = months
		}
		if months[c.At.Month()] {
			p.errorf("%s: duplicate case", caseName(c))
		}
		months[c.At.Month()] = true
	}

	for _, city := range fixture.Cities {
		for m := time.January; m <= time.December; m++ {
			if !seen[city.Name][m] {
				p.errorf("%s: missing %s", city.Name, m)
			}
		}
	}
	return p
}

// ── Phase 2: risk model ──

func validateRiskModel(cases []fixture.Case) *phase {
	p := &phase{name: "Phase 2: Risk model"}
	for i := range cases {
		c := &cases[i]
		a := &c.Evaluation.Analysis
		name := caseName(c)

		want := domain.SeasonalRisk(c.At.Month())
		if !a.Factors.Equal(want) {
			p.errorf("%s: factors %v, want %v", name, a.Factors.Map(), want.Map())
		}
		if a.OverallScore < 0 || a.OverallScore > 100 {
			p.errorf("%s: overall %d out of range", name, a.OverallScore)
		}
		if a.OverallScore != a.Factors.Overall() {
			p.errorf("%s: overall %d, want %d", name, a.OverallScore, a.Factors.Overall())
		}
		if r := domain.ClassifyRegion(c.City.Lat, c.City.Lon); a.Location.Region != r {
			p.errorf("%s: region %s, want %s", name, a.Location.Region, r)
		}
		if a.Location.Lat != c.City.Lat || a.Location.Lon != c.City.Lon {
			p.errorf("%s: analysis location (%v, %v) differs from city", name, a.Location.Lat, a.Location.Lon)
		}
		if !a.LastUpdated.Equal(c.At) {
			p.errorf("%s: last_updated %s, want %s", name, a.LastUpdated, c.At)
		}
		if a.DataSource != domain.AnalysisDataSource {
			p.errorf("%s: data source %q", name, a.DataSource)
		}
	}
	return p
}

// ── Phase 3: alert synthesis ──

func validateAlerts(cases []fixture.Case) *phase {
	p := &phase{name: "Phase 3: Alert synthesis"}
	for i := range cases {
		c := &cases[i]
		name := caseName(c)
		alerts := c.Evaluation.Alerts

		if alerts == nil {
			p.errorf("%s: alerts is null, want []", name)
		}
		if len(alerts) > maxAlerts {
			p.errorf("%s: %d alerts, want at most %d", name, len(alerts), maxAlerts)
		}
		for j := range alerts {
			checkAlert(p, name, c, &alerts[j])
		}
	}
	return p
}

func checkAlert(p *phase, name string, c *fixture.Case, a *domain.ActiveAlert) {
	if !domain.HasAlertTemplate(a.Type) {
		p.errorf("%s: alert for untemplated kind %s", name, a.Type)
	}
	if score := c.Evaluation.Analysis.Factors.Score(a.Type); score <= candidateCutoff {
		p.errorf("%s: alert %s with score %d", name, a.Type, score)
	}
	if a.Title == "" || a.Description == "" || a.Severity == "" {
		p.errorf("%s: alert %s missing text fields", name, a.Type)
	}
	if len(a.Recommendations) == 0 {
		p.errorf("%s: alert %s has no recommendations", name, a.Type)
	}
	if a.Confidence < minConfidence || a.Confidence > maxConfidence {
		p.errorf("%s: confidence %d outside [%d,%d]", name, a.Confidence, minConfidence, maxConfidence)
	}
	if a.Source != domain.AlertSource {
		p.errorf("%s: alert source %q", name, a.Source)
	}
	if want := domain.ClassifyRegion(c.City.Lat, c.City.Lon).Label(); a.Area != want {
		p.errorf("%s: area %q, want %q", name, a.Area, want)
	}
	if want := c.At.Format(domain.TimeOfDayLayout); a.StartTime != want {
		p.errorf("%s: start %s, want %s", name, a.StartTime, want)
	}
	if want := c.At.Add(alertValidity).Format(domain.TimeOfDayLayout); a.EndTime != want {
		p.errorf("%s: end %s, want %s", name, a.EndTime, want)
	}
}

// ── Phase 4: historical events ──

func validateHistory(cases []fixture.Case) *phase {
	p := &phase{name: "Phase 4: Historical events"}
	for i := range cases {
		c := &cases[i]
		name := caseName(c)
		events := c.Evaluation.Analysis.HistoricalEvents

		if len(events) > maxHistory {
			p.errorf("%s: %d events, want at most %d", name, len(events), maxHistory)
		}

		newest := c.At.AddDate(0, 0, -1)
		oldest := c.At.AddDate(0, 0, -lookbackDays)
		for j, e := range events {
			if e.Date.After(newest) || e.Date.Before(oldest) {
				p.errorf("%s: event %d dated %s outside the last %d days", name, j, e.DisplayDate(), lookbackDays)
			}
			if j > 0 && e.Date.After(events[j-1].Date) {
				p.errorf("%s: event %d is newer than event %d", name, j, j-1)
			}
			if e.Region != c.Evaluation.Analysis.Location.Region {
				p.errorf("%s: event %d region %s", name, j, e.Region)
			}
			if e.Name == "" || e.Severity == "" || e.Impact == "" {
				p.errorf("%s: event %d missing text fields", name, j)
			}
		}
	}
	return p
}

// ── Phase 5: reproducibility ──

func validateReproducible(f fixture.File) *phase {
	p := &phase{name: "Phase 5: Regenerates from seed"}

	opts, err := f.Options()
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if diff := cmp.Diff(fixture.Generate(opts), f); diff != "" {
		p.errorf("fixture differs from seed %d (-generated +file):\n%s", f.Seed, diff)
	}
	return p
}
