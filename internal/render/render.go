// Package render prints evaluations and weather for the riskctl command.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/weather"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts table or json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table or json)", s)
	}
}

// Forecast pairs current conditions with the week ahead.
type Forecast struct {
	Current weather.Current `json:"current"`
	Days    []weather.Day   `json:"days"`
}

type Renderer interface {
	Analysis(w io.Writer, a domain.RiskAnalysis) error
	Alerts(w io.Writer, alerts []domain.ActiveAlert) error
	Weather(w io.Writer, f Forecast) error
}

func New(f Format) Renderer {
	switch f {
	case FormatJSON:
		return &jsonRenderer{}
	default:
		return &tableRenderer{}
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Analysis(w io.Writer, a domain.RiskAnalysis) error {
	return encode(w, a)
}

func (r *jsonRenderer) Alerts(w io.Writer, alerts []domain.ActiveAlert) error {
	if alerts == nil {
		alerts = []domain.ActiveAlert{}
	}
	return encode(w, alerts)
}

func (r *jsonRenderer) Weather(w io.Writer, f Forecast) error {
	return encode(w, f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type tableRenderer struct{}

func (r *tableRenderer) Analysis(w io.Writer, a domain.RiskAnalysis) error {
	fmt.Fprintf(w, "Region:  %s (%.4f, %.4f)\n", a.Location.Region.Label(), a.Location.Lat, a.Location.Lon)
	fmt.Fprintf(w, "Overall: %d/100 (%s)\n", a.OverallScore, domain.RiskLevel(a.OverallScore))
	fmt.Fprintf(w, "Updated: %s\n", a.LastUpdated.Format("15:04:05 "+domain.DateLayout))
	fmt.Fprintf(w, "Source:  %s\n\n", a.DataSource)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "HAZARD\tSCORE\tLEVEL\n")
	for _, k := range domain.HazardKinds() {
		score := a.Factors.Score(k)
		fmt.Fprintf(tw, "%s\t%d\t%s\n", k, score, domain.RiskLevel(score))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(a.HistoricalEvents) == 0 {
		fmt.Fprintf(w, "\nNo events in the last 30 days.\n")
		return nil
	}

	fmt.Fprintf(w, "\n")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "DATE\tEVENT\tSEVERITY\tIMPACT\n")
	for _, e := range a.HistoricalEvents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.DisplayDate(), e.Name, e.Severity, e.Impact)
	}
	return tw.Flush()
}

func (r *tableRenderer) Alerts(w io.Writer, alerts []domain.ActiveAlert) error {
	if len(alerts) == 0 {
		fmt.Fprintf(w, "No active alerts.\n")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tTITLE\tSEVERITY\tVALID\tAREA\tCONFIDENCE\n")
	for _, a := range alerts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s\t%d%%\n",
			strings.ToUpper(string(a.Type)),
			a.Title,
			a.Severity,
			a.StartTime,
			a.EndTime,
			a.Area,
			a.Confidence,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, a := range alerts {
		fmt.Fprintf(w, "\n--- %s ---\n", a.Title)
		fmt.Fprintf(w, "%s\n", a.Description)
		fmt.Fprintf(w, "Source: %s\n", a.Source)
		if len(a.Recommendations) > 0 {
			fmt.Fprintf(w, "Recommendations:\n")
			for i, s := range a.Recommendations {
				fmt.Fprintf(w, "  %d. %s\n", i+1, s)
			}
		}
	}
	return nil
}

func (r *tableRenderer) Weather(w io.Writer, f Forecast) error {
	c := f.Current
	fmt.Fprintf(w, "%s\n", c.Location)
	fmt.Fprintf(w, "%d°C (feels like %d°C), %s\n", c.Temperature, c.FeelsLike, c.ConditionVi)
	fmt.Fprintf(w, "Humidity %d%%  Wind %d km/h  Visibility %d km  Pressure %d hPa  UV %d\n\n",
		c.Humidity, c.WindSpeed, c.Visibility, c.Pressure, c.UVIndex)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "DAY\tDATE\tHIGH\tLOW\tCONDITION\tHUMIDITY\tWIND\n")
	for _, d := range f.Days {
		fmt.Fprintf(tw, "%s\t%s\t%d°\t%d°\t%s\t%d%%\t%d\n",
			d.Day, d.Date, d.High, d.Low, d.Condition, d.Humidity, d.WindSpeed)
	}
	return tw.Flush()
}
