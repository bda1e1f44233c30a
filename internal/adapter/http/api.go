package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/sos"
	"github.com/couchcryptid/weather-life/internal/weather"
)

const maxBodyBytes = 1 << 12

// WarningSource holds the latest refresh result.
type WarningSource interface {
	Latest() (domain.WarningSnapshot, bool)
}

// Evaluator runs an on-demand risk evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, geo domain.Geo) domain.Evaluation
}

// WeatherSource produces current conditions and the forecast.
type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) weather.Current
	Forecast() []weather.Day
}

// LocationStore is the shared device location.
type LocationStore interface {
	domain.LocationProvider
	Set(r domain.LocationReading)
}

// SOSController drives the SOS control.
type SOSController interface {
	Press() bool
	Release() bool
	Cancel(ctx context.Context) (domain.SOSAlert, bool)
	Status() sos.Status
}

// API serves the JSON endpoints under /api.
type API struct {
	Warnings  WarningSource
	Evaluator Evaluator
	Weather   WeatherSource
	Location  LocationStore
	SOS       SOSController
	Contacts  []domain.EmergencyContact
	Logger    *slog.Logger
}

func (a *API) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/warnings", a.handleWarnings)
	mux.HandleFunc("GET /api/risk", a.handleRisk)
	mux.HandleFunc("GET /api/weather", a.handleWeather)
	mux.HandleFunc("GET /api/forecast", a.handleForecast)
	mux.HandleFunc("GET /api/guides/{kind}", a.handleGuide)
	mux.HandleFunc("GET /api/contacts", a.handleContacts)
	mux.HandleFunc("PUT /api/location", a.handleSetLocation)
	mux.HandleFunc("GET /api/sos", a.handleSOSStatus)
	mux.HandleFunc("POST /api/sos/press", a.handleSOSPress)
	mux.HandleFunc("POST /api/sos/release", a.handleSOSRelease)
	mux.HandleFunc("POST /api/sos/cancel", a.handleSOSCancel)
}

func (a *API) handleWarnings(w http.ResponseWriter, _ *http.Request) {
	snap, ok := a.Warnings.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no warning snapshot has been produced yet")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, snap)
}

func (a *API) handleRisk(w http.ResponseWriter, r *http.Request) {
	geo, err := a.coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, a.Evaluator.Evaluate(r.Context(), geo))
}

func (a *API) handleWeather(w http.ResponseWriter, r *http.Request) {
	geo, err := a.coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, a.Weather.Current(r.Context(), geo.Lat, geo.Lon))
}

func (a *API) handleForecast(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"days": a.Weather.Forecast()})
}

func (a *API) handleGuide(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseHazardKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	guide, ok := domain.PreparednessGuide(kind)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no preparedness guide for %s", kind))
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, guide)
}

func (a *API) handleContacts(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"contacts": a.Contacts})
}

// locationUpdate is the body of PUT /api/location. Coordinates are either
// both present or both absent; an absent pair with an error reports a
// failed fix.
type locationUpdate struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

func (a *API) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var body locationUpdate
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid location body: "+err.Error())
		return
	}

	reading := domain.LocationReading{Latitude: body.Latitude, Longitude: body.Longitude, Error: body.Error}
	if (body.Latitude == nil) != (body.Longitude == nil) {
		writeError(w, http.StatusBadRequest, "latitude and longitude must be given together")
		return
	}
	if geo, ok := reading.Coordinates(); ok {
		if err := validateGeo(geo); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	a.Location.Set(reading)
	a.Logger.Info("device location updated",
		"has_fix", body.Latitude != nil,
		"location_error", body.Error,
	)
	sharedobs.WriteJSON(w, http.StatusOK, a.Location.Locate(r.Context()))
}

func (a *API) handleSOSStatus(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, a.SOS.Status())
}

func (a *API) handleSOSPress(w http.ResponseWriter, _ *http.Request) {
	if !a.SOS.Press() {
		writeError(w, http.StatusConflict, "sos countdown already running or alert active")
		return
	}
	sharedobs.WriteJSON(w, http.StatusAccepted, a.SOS.Status())
}

func (a *API) handleSOSRelease(w http.ResponseWriter, _ *http.Request) {
	if !a.SOS.Release() {
		writeError(w, http.StatusConflict, "no sos countdown to abort")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, a.SOS.Status())
}

func (a *API) handleSOSCancel(w http.ResponseWriter, r *http.Request) {
	alert, ok := a.SOS.Cancel(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no active sos alert")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, alert)
}

// coordinates reads lat/lon from the query, falling back to the current
// device location when both are omitted.
func (a *API) coordinates(r *http.Request) (domain.Geo, error) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	if latStr == "" && lonStr == "" {
		if geo, ok := a.Location.Locate(r.Context()).Coordinates(); ok {
			return geo, nil
		}
		return domain.Geo{}, errors.New("lat and lon are required until a device location is known")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Geo{}, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.Geo{}, fmt.Errorf("invalid lon %q", lonStr)
	}
	geo := domain.Geo{Lat: lat, Lon: lon}
	return geo, validateGeo(geo)
}

func validateGeo(geo domain.Geo) error {
	if math.IsNaN(geo.Lat) || geo.Lat < -90 || geo.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", geo.Lat)
	}
	if math.IsNaN(geo.Lon) || geo.Lon < -180 || geo.Lon > 180 {
		return fmt.Errorf("longitude %v out of range", geo.Lon)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
