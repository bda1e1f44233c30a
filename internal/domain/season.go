package domain

import "time"

// Rainy season months run May through October inclusive.
const (
	rainySeasonStart = time.May
	rainySeasonEnd   = time.October
)

var (
	rainySeasonRisk = mustRiskScoreSet(map[HazardKind]int{
		HazardFlood:        70,
		HazardStorm:        60,
		HazardThunderstorm: 80,
		HazardHeavyRain:    85,
		HazardLandslide:    65,
		HazardHeatWave:     30,
		HazardDrought:      10,
	})
	drySeasonRisk = mustRiskScoreSet(map[HazardKind]int{
		HazardFlood:        20,
		HazardStorm:        25,
		HazardThunderstorm: 30,
		HazardHeavyRain:    25,
		HazardLandslide:    30,
		HazardHeatWave:     70,
		HazardDrought:      60,
	})
)

// IsRainySeason reports whether month falls in the rainy regime.
func IsRainySeason(month time.Month) bool {
	return month >= rainySeasonStart && month <= rainySeasonEnd
}

// SeasonalRisk returns the per-hazard risk scores for a month. Only the
// season matters; months outside 1–12 fall into the dry regime.
func SeasonalRisk(month time.Month) RiskScoreSet {
	if IsRainySeason(month) {
		return rainySeasonRisk
	}
	return drySeasonRisk
}
