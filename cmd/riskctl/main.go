// Command riskctl evaluates disaster risk, alerts and weather for a
// coordinate from the terminal, without running the service.
package main

import (
	"fmt"
	"math"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/render"
	"github.com/couchcryptid/weather-life/internal/weather"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(clockwork.NewRealClock()).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	lat, lon float64
	month    int
	seed     uint64
	output   string
	timezone string
}

// evaluation inputs resolved from the flags.
type inputs struct {
	now      time.Time
	rng      domain.RandomSource
	renderer render.Renderer
}

func (o *options) resolve(cmd *cobra.Command, clock clockwork.Clock) (inputs, error) {
	if math.IsNaN(o.lat) || o.lat < -90 || o.lat > 90 {
		return inputs{}, fmt.Errorf("invalid --lat %v", o.lat)
	}
	if math.IsNaN(o.lon) || o.lon < -180 || o.lon > 180 {
		return inputs{}, fmt.Errorf("invalid --lon %v", o.lon)
	}
	if o.month < 0 || o.month > 12 {
		return inputs{}, fmt.Errorf("invalid --month %d: want 1-12", o.month)
	}

	format, err := render.ParseFormat(o.output)
	if err != nil {
		return inputs{}, err
	}
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return inputs{}, fmt.Errorf("invalid --tz: %w", err)
	}

	now := clock.Now().In(loc)
	if o.month != 0 {
		now = time.Date(now.Year(), time.Month(o.month), 15, now.Hour(), now.Minute(), now.Second(), 0, loc)
	}

	rng := domain.DefaultRandom
	if cmd.Flags().Changed("seed") {
		rng = domain.NewSeededRandom(o.seed)
	}

	return inputs{now: now, rng: rng, renderer: render.New(format)}, nil
}

func newRootCmd(clock clockwork.Clock) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "riskctl",
		Short:        "Evaluate disaster risk and weather for a location in Vietnam",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.Float64Var(&opts.lat, "lat", 0, "latitude in decimal degrees")
	flags.Float64Var(&opts.lon, "lon", 0, "longitude in decimal degrees")
	flags.IntVar(&opts.month, "month", 0, "evaluate as if in this month (1-12, 0 = now)")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed the random source for reproducible output")
	flags.StringVarP(&opts.output, "output", "o", string(render.FormatTable), "output format: table or json")
	flags.StringVar(&opts.timezone, "tz", "Asia/Ho_Chi_Minh", "display timezone")
	_ = root.MarkPersistentFlagRequired("lat")
	_ = root.MarkPersistentFlagRequired("lon")

	root.AddCommand(
		newAnalyzeCmd(opts, clock),
		newAlertsCmd(opts, clock),
		newWeatherCmd(opts, clock),
	)
	return root
}

func newAnalyzeCmd(opts *options, clock clockwork.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Show seasonal risk factors and recent events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.resolve(cmd, clock)
			if err != nil {
				return err
			}
			a := domain.Aggregate(opts.lat, opts.lon, in.now, in.rng)
			return in.renderer.Analysis(cmd.OutOrStdout(), a)
		},
	}
}

func newAlertsCmd(opts *options, clock clockwork.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Synthesize the active alerts for this refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.resolve(cmd, clock)
			if err != nil {
				return err
			}
			alerts := domain.SynthesizeAlerts(opts.lat, opts.lon, domain.SeasonalRisk(in.now.Month()), in.rng, in.now)
			return in.renderer.Alerts(cmd.OutOrStdout(), alerts)
		},
	}
}

func newWeatherCmd(opts *options, clock clockwork.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Show current conditions and the seven-day forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.resolve(cmd, clock)
			if err != nil {
				return err
			}
			name := domain.LocalPlaceName(opts.lat, opts.lon)
			return in.renderer.Weather(cmd.OutOrStdout(), render.Forecast{
				Current: weather.CurrentConditions(name, opts.lat, opts.lon, in.now, in.rng),
				Days:    weather.Forecast(in.now, in.rng),
			})
		},
	}
}
