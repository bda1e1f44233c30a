// Package domain models the disaster-warning core: seasonal hazard risk,
// region classification, alert synthesis and synthetic event history.
//
// # Hazards
//
// Seven hazard kinds are tracked, always in this order:
//
//	flood, storm, thunderstorm, heavy_rain, heat_wave, landslide, drought
//
// A [RiskScoreSet] carries exactly one score in [0,100] for each of them.
//
// # Seasons
//
// Vietnam has two regimes. May through October is the rainy season, every
// other month is dry. Scores depend on the regime only:
//
//	          flood storm thunder heavy_rain heat_wave landslide drought
//	rainy       70    60     80       85        30        65        10
//	dry         20    25     30       25        70        30        60
//
// The overall score of an analysis is the rounded mean: 57 in the rainy
// season, 37 in the dry season.
//
// # Regions
//
// Inclusive bounding boxes, checked north, central, south:
//
//	north:   lat 20–24, lon 102–108
//	central: lat 14–20, lon 105–110
//	south:   lat  8–14, lon 104–110
//
// The boxes share edges. A point on lat 20 inside both north and central
// longitudes is north because north is checked first.
//
// # Alerts
//
// Each evaluation yields at most one alert. An activation roll above 0.7
// selects a random hazard among those scoring above 50. Only flood, storm,
// heavy_rain and heat_wave have alert templates; picking thunderstorm,
// landslide or drought yields nothing.
//
// # Randomness
//
// Every generator takes a [RandomSource]. Draws happen in a fixed order
// documented on each function so tests can script them.
package domain
