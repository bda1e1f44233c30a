// Package weather generates plausible current conditions and a seven-day
// forecast from the season, the hour and the injected random source.
package weather

import (
	"math"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
)

// ForecastDays is the forecast horizon, today included.
const ForecastDays = 7

// Current is a snapshot of conditions at one location.
type Current struct {
	Location    string     `json:"location"`
	Temperature int        `json:"temperature"`
	Condition   string     `json:"condition"`
	ConditionVi string     `json:"condition_vi"`
	Humidity    int        `json:"humidity"`
	WindSpeed   int        `json:"wind_speed"`
	Visibility  int        `json:"visibility"`
	Pressure    int        `json:"pressure"`
	UVIndex     int        `json:"uv_index"`
	FeelsLike   int        `json:"feels_like"`
	Coordinates domain.Geo `json:"coordinates"`
}

// Day is one forecast entry.
type Day struct {
	Day         string `json:"day"`
	Date        string `json:"date"`
	High        int    `json:"high"`
	Low         int    `json:"low"`
	Condition   string `json:"condition"`
	ConditionEn string `json:"condition_en"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
}

type condition struct {
	icon string
	vi   string
	en   string
}

var forecastConditions = []condition{
	{icon: "sunny", vi: "Nắng", en: "Sunny"},
	{icon: "partly-cloudy", vi: "Có mây", en: "Partly Cloudy"},
	{icon: "cloudy", vi: "Nhiều mây", en: "Cloudy"},
	{icon: "rainy", vi: "Mưa", en: "Rainy"},
}

var weekdayNames = [7]string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}

const todayName = "Hôm nay"

// draw returns floor(d*n) for one uniform draw.
func draw(rng domain.RandomSource, n int) int {
	return int(math.Floor(rng.Float64() * float64(n)))
}

// CurrentConditions builds current conditions for now, read in its own
// location.
//
// Draw order from rng: rain roll (June through August only), temperature,
// humidity, wind, visibility, pressure, UV index (daytime only), feels-like.
func CurrentConditions(name string, lat, lon float64, now time.Time, rng domain.RandomSource) Current {
	temp, humidity := 28, 65
	cond, condVi := "Partly Cloudy", "Có mây"

	month := now.Month()
	switch {
	case month == time.December || month <= time.February:
		temp, humidity = 22, 70
	case month >= time.June && month <= time.August:
		temp, humidity = 32, 80
		if rng.Float64() > 0.6 {
			cond, condVi = "Rainy", "Mưa"
		}
	}

	hour := now.Hour()
	switch {
	case hour >= 6 && hour <= 10:
		temp -= 3
	case hour >= 12 && hour <= 16:
		temp += 2
	case hour >= 18 && hour <= 22:
		temp--
	default:
		temp -= 5
	}

	temp += draw(rng, 6) - 3
	humidity += draw(rng, 20) - 10

	c := Current{
		Location:    name,
		Temperature: temp,
		Condition:   cond,
		ConditionVi: condVi,
		Humidity:    min(max(humidity, 30), 95),
		WindSpeed:   draw(rng, 15) + 5,
		Visibility:  draw(rng, 5) + 8,
		Pressure:    1013 + draw(rng, 20) - 10,
		Coordinates: domain.Geo{Lat: lat, Lon: lon},
	}
	if hour >= 6 && hour <= 18 {
		c.UVIndex = draw(rng, 8) + 1
	}
	c.FeelsLike = int(math.Round(float64(temp) + rng.Float64()*6 - 2))
	return c
}

// Forecast builds ForecastDays entries starting today.
//
// Draw order per day: base temperature, condition, high, low, humidity,
// wind.
func Forecast(now time.Time, rng domain.RandomSource) []Day {
	days := make([]Day, 0, ForecastDays)
	for i := range ForecastDays {
		date := now.AddDate(0, 0, i)
		name := weekdayNames[date.Weekday()]
		if i == 0 {
			name = todayName
		}

		base := 28 + draw(rng, 8) - 4
		cond := forecastConditions[min(draw(rng, len(forecastConditions)), len(forecastConditions)-1)]

		days = append(days, Day{
			Day:         name,
			Date:        date.Format(domain.DateLayout),
			High:        base + draw(rng, 4),
			Low:         base - draw(rng, 8) - 5,
			Condition:   cond.vi,
			ConditionEn: cond.en,
			Icon:        cond.icon,
			Humidity:    60 + draw(rng, 30),
			WindSpeed:   5 + draw(rng, 15),
		})
	}
	return days
}
