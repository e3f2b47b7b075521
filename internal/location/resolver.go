package location

import (
	"context"
	"fmt"
	"sync"

	"sunfutures/internal/providers/nws"
	"sunfutures/internal/timezone"
	"sunfutures/internal/types"
)

// GridPoint carries the per-source identifiers a site resolves to: the NWS
// forecast office grid cell with its forecast URLs, plus the IANA timezone
// used for local-day aggregation.
type GridPoint struct {
	Office            string
	GridX             int
	GridY             int
	ForecastHourlyURL string
	ForecastGridURL   string
	Timezone          string
}

// Service resolves a site location to the grid identifiers required by each
// weather source. Resolution is pure aside from the NWS points call.
type Service interface {
	Resolve(ctx context.Context, loc types.Location) (*GridPoint, error)
}

// PointProvider defines the NWS points lookup dependency.
type PointProvider interface {
	GetPoint(ctx context.Context, latitude, longitude float64) (*nws.PointAPIResponse, error)
}

type resolverService struct {
	pointProvider   PointProvider
	timezoneService timezone.Service
}

// NewResolverService creates a resolver with real provider clients.
func NewResolverService(contact string) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}
	return NewResolverServiceWithProviders(nws.NewClient(contact), tzSvc), nil
}

// NewResolverServiceWithProviders creates a resolver with custom providers.
// This is useful for testing with mock providers.
func NewResolverServiceWithProviders(pointProvider PointProvider, timezoneService timezone.Service) Service {
	return &resolverService{
		pointProvider:   pointProvider,
		timezoneService: timezoneService,
	}
}

// Resolve looks up the NWS grid point and the site timezone in parallel.
func (s *resolverService) Resolve(ctx context.Context, loc types.Location) (*GridPoint, error) {
	var (
		wg        sync.WaitGroup
		pointResp *nws.PointAPIResponse
		tzName    string
		pointErr  error
		tzErr     error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		pointResp, pointErr = s.pointProvider.GetPoint(ctx, loc.Latitude, loc.Longitude)
		if pointErr != nil {
			pointErr = fmt.Errorf("failed to resolve NWS grid point: %w", pointErr)
		}
	}()

	go func() {
		defer wg.Done()
		tzName, tzErr = s.timezoneService.GetTimezone(loc.Latitude, loc.Longitude)
	}()

	wg.Wait()

	if pointErr != nil {
		return nil, pointErr
	}

	// The offline timezone finder is primary; the NWS point timezone covers
	// coordinates the finder cannot place.
	if tzErr != nil {
		tzName = pointResp.Properties.TimeZone
	}
	if tzName == "" {
		return nil, fmt.Errorf("no timezone resolved for coordinates (%.4f, %.4f)", loc.Latitude, loc.Longitude)
	}

	return &GridPoint{
		Office:            pointResp.Properties.GridId,
		GridX:             pointResp.Properties.GridX,
		GridY:             pointResp.Properties.GridY,
		ForecastHourlyURL: pointResp.Properties.ForecastHourly,
		ForecastGridURL:   pointResp.Properties.ForecastGridData,
		Timezone:          tzName,
	}, nil
}
