package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"sunfutures/internal/cache"
	"sunfutures/internal/config"
	"sunfutures/internal/ensemble"
	"sunfutures/internal/equipment"
	"sunfutures/internal/location"
	"sunfutures/internal/observability/metrics"
	"sunfutures/internal/pv"
	"sunfutures/internal/report"
	"sunfutures/internal/types"
	"sunfutures/internal/weather"
)

// Service runs the forecast pipeline: validate, resolve, fetch, blend,
// extend, irradiance, power, aggregate, bands. Forecast responses are cached
// and deduplicated by input fingerprint; reports rerun the same pipeline to
// expose its hourly internals.
type Service interface {
	Forecast(ctx context.Context, req Request) (*Response, bool, error)
	Report(ctx context.Context, req Request) (*Response, *report.Report, error)
}

type forecastService struct {
	cfg       *config.Config
	resolver  location.Service
	weather   weather.Service
	equipment equipment.Service
	engine    *ensemble.Engine
	cache     *cache.Cache
	logger    *slog.Logger
}

func NewForecastService(
	cfg *config.Config,
	resolver location.Service,
	weatherService weather.Service,
	equipmentService equipment.Service,
	forecastCache *cache.Cache,
	logger *slog.Logger,
) Service {
	return &forecastService{
		cfg:       cfg,
		resolver:  resolver,
		weather:   weatherService,
		equipment: equipmentService,
		engine:    ensemble.NewEngine(logger),
		cache:     forecastCache,
		logger:    logger.With("component", "forecast_service"),
	}
}

// pipelineRun keeps the hourly internals alive for the report path.
type pipelineRun struct {
	response *Response
	hours    []pv.HourlyPower
	dailyPOA []pv.DailyPOA
	losses   types.LossConfig
	plant    types.PlantConfig
	params   pv.ModelParams
}

// Forecast returns the daily series for the request, serving identical
// concurrent requests from a single pipeline execution. The second return
// reports a cache hit.
func (s *forecastService) Forecast(ctx context.Context, req Request) (*Response, bool, error) {
	normalized, err := s.normalize(req)
	if err != nil {
		return nil, false, err
	}

	key, err := cache.Fingerprint(normalized.Location, normalized.Plant, *normalized.Losses, normalized.EquipmentFiles, normalized.HorizonDays)
	if err != nil {
		return nil, false, fmt.Errorf("computing request fingerprint: %w", err)
	}

	raw, hit, err := s.cache.Do(ctx, key, func(ctx context.Context) ([]byte, error) {
		run, err := s.run(ctx, normalized)
		if err != nil {
			return nil, err
		}
		return json.Marshal(run.response)
	})
	if err != nil {
		return nil, false, err
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("decoding cached forecast: %w", err)
	}
	return &resp, hit, nil
}

// Report reruns the pipeline for the request and derives the KPI block and
// loss diagram from its hourly internals.
func (s *forecastService) Report(ctx context.Context, req Request) (*Response, *report.Report, error) {
	normalized, err := s.normalize(req)
	if err != nil {
		return nil, nil, err
	}
	run, err := s.run(ctx, normalized)
	if err != nil {
		return nil, nil, err
	}
	rep := report.Build(report.Inputs{
		Plant:    run.plant,
		Losses:   run.losses,
		Params:   run.params,
		Daily:    run.response.Daily,
		DailyPOA: run.dailyPOA,
	})
	return run.response, rep, nil
}

// normalize applies defaults and validates the request before any upstream
// call. Validation failures carry ErrInvalidConfiguration.
func (s *forecastService) normalize(req Request) (Request, error) {
	if err := req.Location.Validate(); err != nil {
		return req, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	req.Plant.ApplyDefaults()
	if err := req.Plant.Validate(); err != nil {
		return req, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	if req.Losses == nil {
		losses := types.DefaultLossConfig()
		req.Losses = &losses
	}
	if err := req.Losses.Validate(); err != nil {
		return req, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	if req.HorizonDays <= 0 {
		req.HorizonDays = s.cfg.Forecast.DefaultHorizonDays
	}
	if req.HorizonDays > 60 {
		return req, fmt.Errorf("%w: horizon_days %d exceeds maximum 60", ErrInvalidConfiguration, req.HorizonDays)
	}
	return req, nil
}

func (s *forecastService) run(ctx context.Context, req Request) (*pipelineRun, error) {
	start := time.Now()
	defer func() {
		metrics.ObservePipeline(time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout())
	defer cancel()

	var notes []string
	if req.Plant.DCCapacityKW < req.Plant.ACCapacityKW {
		notes = append(notes, "DC capacity is below AC capacity, the inverter will never reach its rated output")
	}

	grid, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, err)
	}
	tz, err := time.LoadLocation(grid.Timezone)
	if err != nil {
		s.logger.Warn("unknown site timezone, using UTC", "timezone", grid.Timezone, "error", err)
		tz = time.UTC
		notes = append(notes, fmt.Sprintf("timezone %q not recognized, daily boundaries use UTC", grid.Timezone))
	}

	profile, equipmentNotes := s.equipment.Extract(ctx, req.EquipmentFiles)
	notes = append(notes, equipmentNotes...)
	params := pv.ResolveParams(profile)

	fetch, err := s.weather.Fetch(ctx, req.Location, grid, req.HorizonDays, s.cfg.Ensemble.Enabled)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, err)
	}
	if fetch.GridStatus.State == weather.StateUnavailable {
		notes = append(notes, "grid forecast unavailable, first 168 hours rely on the hourly source with reduced confidence")
	}

	series := weather.Blend(fetch.Hourly, fetch.Grid)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: hourly forecast contained no usable samples", ErrUpstreamUnavailable)
	}

	// extend through the end of the last requested site-local day
	firstLocal := series[0].Time.In(tz)
	dayStart := time.Date(firstLocal.Year(), firstLocal.Month(), firstLocal.Day(), 0, 0, 0, 0, tz)
	through := dayStart.AddDate(0, 0, req.HorizonDays).Add(-time.Hour)
	extendedFrom := len(series)
	series = weather.Extend(series, through)
	if len(series) > extendedFrom {
		notes = append(notes, fmt.Sprintf("%d hours beyond modeled data use persistence of the last modeled day", len(series)-extendedFrom))
	}

	hours := pv.ComputeSeries(series, req.Location, req.Plant, *req.Losses, params)
	daily := pv.AggregateDaily(hours, tz, req.HorizonDays)
	dailyPOA := pv.AggregateDailyPOA(hours, tz, req.HorizonDays)

	var ensembleInput = fetch.Ensemble
	if fetch.EnsembleStatus.State != weather.StateOK {
		ensembleInput = nil
	}
	bands := s.engine.Bands(ctx, ensembleInput, series, daily, ensemble.Inputs{
		Location: req.Location,
		Plant:    req.Plant,
		Losses:   *req.Losses,
		Params:   params,
		Timezone: tz,
		Horizon:  req.HorizonDays,
	})
	if bands.Note != "" {
		notes = append(notes, bands.Note)
	}

	s.logger.Info("forecast pipeline complete",
		"site", req.Location.Name,
		"horizon_days", req.HorizonDays,
		"band_source", bands.Source,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	resp := &Response{
		SiteName:    req.Location.Name,
		Timezone:    grid.Timezone,
		HorizonDays: req.HorizonDays,
		Daily:       daily,
		Bands:       bands.Bands,
		Sources: SourcesUsed{
			Hourly:     fetch.HourlyStatus,
			Grid:       fetch.GridStatus,
			Ensemble:   fetch.EnsembleStatus,
			BandSource: bands.Source,
		},
		Notes:       notes,
		GeneratedAt: time.Now().UTC(),
	}
	return &pipelineRun{
		response: resp,
		hours:    hours,
		dailyPOA: dailyPOA,
		losses:   *req.Losses,
		plant:    req.Plant,
		params:   params,
	}, nil
}
