// Command genmock generates a reproducible evaluation fixture for downstream
// test suites. Every sample city is evaluated on the 15th of each month with
// one seeded random sequence, using the same domain code as the service.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/evaluations_2026.json \
//	  -seed 20260101 -year 2026 -tz Asia/Ho_Chi_Minh
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/fixture"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the evaluation fixture")
	seed := flag.Uint64("seed", 20260101, "random seed")
	year := flag.Int("year", 2026, "calendar year to evaluate")
	tz := flag.String("tz", "Asia/Ho_Chi_Minh", "IANA timezone for the evaluation instants")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	f := fixture.Generate(fixture.Options{Seed: *seed, Year: *year, Location: loc})
	log.Printf("generated %d cases for %d cities", len(f.Cases), len(fixture.Cities))

	if err := fixture.Write(*out, f); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(f.Cases)
	return nil
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	regionCounts   map[domain.Region]int
	alertCounts    map[domain.HazardKind]int
	severityCounts map[string]int
	historyCounts  map[domain.HazardKind]int
	withAlert      int
	historyTotal   int
	rainyCases     int
}

func collectStats(cases []fixture.Case) statsResult {
	s := statsResult{
		regionCounts:   map[domain.Region]int{},
		alertCounts:    map[domain.HazardKind]int{},
		severityCounts: map[string]int{},
		historyCounts:  map[domain.HazardKind]int{},
	}
	for i := range cases {
		c := &cases[i]
		a := &c.Evaluation.Analysis
		s.regionCounts[a.Location.Region]++
		if domain.IsRainySeason(c.At.Month()) {
			s.rainyCases++
		}
		for _, alert := range c.Evaluation.Alerts {
			s.withAlert++
			s.alertCounts[alert.Type]++
			s.severityCounts[alert.Severity]++
		}
		for _, e := range a.HistoricalEvents {
			s.historyTotal++
			s.historyCounts[e.Type]++
		}
	}
	return s
}

type kindCount struct {
	kind  string
	count int
}

func sortedCounts[K ~string](m map[K]int) []kindCount {
	out := make([]kindCount, 0, len(m))
	for k, c := range m {
		out = append(out, kindCount{string(k), c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].kind < out[j].kind
	})
	return out
}

func printCounts(label string, counts []kindCount) {
	fmt.Printf("%s:", label)
	for _, c := range counts {
		fmt.Printf(" %s=%d", c.kind, c.count)
	}
	fmt.Println()
}

func printStats(cases []fixture.Case) {
	stats := collectStats(cases)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d (rainy season %d)\n", len(cases), stats.rainyCases)
	printCounts("By region", sortedCounts(stats.regionCounts))
	fmt.Printf("With alert: %d\n", stats.withAlert)
	printCounts("Alerts by type", sortedCounts(stats.alertCounts))
	printCounts("Alerts by severity", sortedCounts(stats.severityCounts))
	fmt.Printf("Historical events: %d\n", stats.historyTotal)
	printCounts("History by type", sortedCounts(stats.historyCounts))
}
