package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// HazardKind identifies a natural hazard tracked by the risk model.
type HazardKind string

const (
	HazardFlood        HazardKind = "flood"
	HazardStorm        HazardKind = "storm"
	HazardThunderstorm HazardKind = "thunderstorm"
	HazardHeavyRain    HazardKind = "heavy_rain"
	HazardHeatWave     HazardKind = "heat_wave"
	HazardLandslide    HazardKind = "landslide"
	HazardDrought      HazardKind = "drought"
)

const hazardCount = 7

// hazardOrder is the canonical iteration order. Candidate selection in the
// alert synthesizer depends on it, so it must not be reordered.
var hazardOrder = [hazardCount]HazardKind{
	HazardFlood,
	HazardStorm,
	HazardThunderstorm,
	HazardHeavyRain,
	HazardHeatWave,
	HazardLandslide,
	HazardDrought,
}

// HazardKinds returns every hazard kind in canonical order.
func HazardKinds() []HazardKind {
	out := make([]HazardKind, hazardCount)
	copy(out, hazardOrder[:])
	return out
}

// ParseHazardKind validates a hazard kind name.
func ParseHazardKind(s string) (HazardKind, error) {
	k := HazardKind(s)
	if _, ok := k.index(); !ok {
		return "", fmt.Errorf("unknown hazard kind %q", s)
	}
	return k, nil
}

func (k HazardKind) index() (int, bool) {
	for i, h := range hazardOrder {
		if h == k {
			return i, true
		}
	}
	return 0, false
}

// RiskScoreSet holds exactly one score in [0,100] per hazard kind.
// It is a value type: copies are independent and there are no setters.
type RiskScoreSet struct {
	scores [hazardCount]int
}

// NewRiskScoreSet builds a score set from a complete mapping. Every hazard
// kind must be present and every score must lie in [0,100].
func NewRiskScoreSet(scores map[HazardKind]int) (RiskScoreSet, error) {
	var s RiskScoreSet
	if len(scores) != hazardCount {
		return s, fmt.Errorf("risk score set needs %d hazards, got %d", hazardCount, len(scores))
	}
	for k, v := range scores {
		i, ok := k.index()
		if !ok {
			return s, fmt.Errorf("unknown hazard kind %q", k)
		}
		if v < 0 || v > 100 {
			return s, fmt.Errorf("score for %s out of range: %d", k, v)
		}
		s.scores[i] = v
	}
	return s, nil
}

func mustRiskScoreSet(scores map[HazardKind]int) RiskScoreSet {
	s, err := NewRiskScoreSet(scores)
	if err != nil {
		panic(err)
	}
	return s
}

// Score returns the score for k, or 0 for an unknown kind.
func (s RiskScoreSet) Score(k HazardKind) int {
	i, ok := k.index()
	if !ok {
		return 0
	}
	return s.scores[i]
}

// Above returns the hazard kinds scoring strictly above threshold, in
// canonical order.
func (s RiskScoreSet) Above(threshold int) []HazardKind {
	var out []HazardKind
	for i, v := range s.scores {
		if v > threshold {
			out = append(out, hazardOrder[i])
		}
	}
	return out
}

// Mean is the arithmetic mean of all scores.
func (s RiskScoreSet) Mean() float64 {
	sum := 0
	for _, v := range s.scores {
		sum += v
	}
	return float64(sum) / hazardCount
}

// Overall is the mean rounded half away from zero.
func (s RiskScoreSet) Overall() int {
	return int(math.Round(s.Mean()))
}

// Map returns a fresh map copy of the scores.
func (s RiskScoreSet) Map() map[HazardKind]int {
	out := make(map[HazardKind]int, hazardCount)
	for i, v := range s.scores {
		out[hazardOrder[i]] = v
	}
	return out
}

// Equal reports whether both sets hold the same scores.
func (s RiskScoreSet) Equal(other RiskScoreSet) bool {
	return s.scores == other.scores
}

func (s RiskScoreSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *RiskScoreSet) UnmarshalJSON(data []byte) error {
	var m map[HazardKind]int
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode risk scores: %w", err)
	}
	parsed, err := NewRiskScoreSet(m)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RiskLevel labels a score for display: Cực cao from 80, Cao from 60,
// Trung bình from 40, Thấp from 20, otherwise Rất thấp.
func RiskLevel(score int) string {
	switch {
	case score >= 80:
		return "Cực cao"
	case score >= 60:
		return SeverityHigh
	case score >= 40:
		return SeverityModerate
	case score >= 20:
		return SeverityLow
	default:
		return "Rất thấp"
	}
}
