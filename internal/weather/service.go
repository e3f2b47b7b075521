package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sunfutures/internal/config"
	"sunfutures/internal/location"
	"sunfutures/internal/observability/metrics"
	"sunfutures/internal/providers/nws"
	"sunfutures/internal/providers/openmeteo"
	"sunfutures/internal/types"
)

// HourlyProvider fetches the required point hourly forecast.
type HourlyProvider interface {
	GetHourlyForecast(ctx context.Context, url string) (*nws.HourlyForecastAPIResponse, error)
}

// GridProvider fetches the optional short-range grid forecast.
type GridProvider interface {
	GetGridForecast(ctx context.Context, url string) (*nws.GridForecastAPIResponse, error)
}

// EnsembleProvider fetches the optional probabilistic ensemble members.
type EnsembleProvider interface {
	GetEnsemble(ctx context.Context, latitude, longitude float64, forecastDays int) (*openmeteo.EnsembleAPIResponse, error)
}

// Service runs the three weather fetchers concurrently and reports explicit
// per-source availability. The hourly source is required; grid and ensemble
// degrade independently under a shorter deadline.
type Service interface {
	Fetch(ctx context.Context, loc types.Location, grid *location.GridPoint, horizonDays int, wantEnsemble bool) (*FetchResult, error)
}

type weatherService struct {
	hourlyProvider   HourlyProvider
	gridProvider     GridProvider
	ensembleProvider EnsembleProvider
	cfg              *config.Config
	logger           *slog.Logger
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) Service {
	nwsClient := nws.NewClient(cfg.Weather.Contact)
	return NewWeatherServiceWithProviders(nwsClient, nwsClient, openmeteo.NewEnsembleClient(), cfg, logger)
}

func NewWeatherServiceWithProviders(
	hourlyProvider HourlyProvider,
	gridProvider GridProvider,
	ensembleProvider EnsembleProvider,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	return &weatherService{
		hourlyProvider:   hourlyProvider,
		gridProvider:     gridProvider,
		ensembleProvider: ensembleProvider,
		cfg:              cfg,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) Fetch(ctx context.Context, loc types.Location, grid *location.GridPoint, horizonDays int, wantEnsemble bool) (*FetchResult, error) {
	hourlyTimeout := time.Duration(s.cfg.Weather.HourlyTimeoutSec) * time.Second
	optionalTimeout := time.Duration(s.cfg.Weather.OptionalTimeoutSec) * time.Second
	retries := s.cfg.Weather.MaxRetries

	result := &FetchResult{}
	var (
		wg        sync.WaitGroup
		hourlyErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		err := withRetries(ctx, retries, hourlyTimeout, func(callCtx context.Context) error {
			resp, err := s.hourlyProvider.GetHourlyForecast(callCtx, grid.ForecastHourlyURL)
			if err != nil {
				return err
			}
			series, err := mapHourlyPeriods(resp.Properties.Periods)
			if err != nil {
				return err
			}
			result.Hourly = series
			return nil
		})
		if err != nil {
			metrics.UpstreamFailure("hourly")
			hourlyErr = fmt.Errorf("hourly forecast unavailable after retries: %w", err)
			result.HourlyStatus = SourceStatus{State: StateUnavailable, Detail: err.Error()}
			return
		}
		result.HourlyStatus = SourceStatus{State: StateOK}
	}()

	go func() {
		defer wg.Done()
		err := withRetries(ctx, retries, optionalTimeout, func(callCtx context.Context) error {
			resp, err := s.gridProvider.GetGridForecast(callCtx, grid.ForecastGridURL)
			if err != nil {
				return err
			}
			series, err := mapGridForecast(resp)
			if err != nil {
				return err
			}
			result.Grid = series
			return nil
		})
		if err != nil {
			metrics.UpstreamFailure("grid")
			s.logger.Warn("grid forecast unavailable, degrading to hourly-only", "error", err)
			result.GridStatus = SourceStatus{State: StateUnavailable, Detail: err.Error()}
			return
		}
		result.GridStatus = SourceStatus{State: StateOK}
	}()

	go func() {
		defer wg.Done()
		if !wantEnsemble {
			result.EnsembleStatus = SourceStatus{State: StateUnavailable, Detail: "ensemble feature disabled"}
			return
		}
		days := horizonDays
		if days > 7 {
			days = 7 // ensemble skill horizon
		}
		err := withRetries(ctx, retries, optionalTimeout, func(callCtx context.Context) error {
			resp, err := s.ensembleProvider.GetEnsemble(callCtx, loc.Latitude, loc.Longitude, days)
			if err != nil {
				return err
			}
			result.Ensemble = resp
			return nil
		})
		if err != nil {
			metrics.UpstreamFailure("ensemble")
			s.logger.Warn("ensemble fetch unavailable, synthetic bands will be used", "error", err)
			result.EnsembleStatus = SourceStatus{State: StateUnavailable, Detail: err.Error()}
			return
		}
		result.EnsembleStatus = SourceStatus{State: StateOK}
	}()

	wg.Wait()

	// No forecast without a baseline weather source.
	if hourlyErr != nil {
		return nil, hourlyErr
	}
	return result, nil
}

// withRetries runs fn with a per-attempt timeout and exponential backoff
// between attempts. retries is the number of re-attempts after the first.
func withRetries(ctx context.Context, retries int, timeout time.Duration, fn func(ctx context.Context) error) error {
	backoff := 500 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return lastErr
}
