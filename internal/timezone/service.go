package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// Service resolves site coordinates to an IANA timezone. Daily energy is
// aggregated over the site's local calendar days, so every pipeline run needs
// this lookup.
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	GetLocation(latitude, longitude float64) (*time.Location, error)
}

type service struct {
	finder tzf.F
}

var (
	instance *service
	once     sync.Once
)

// NewService creates or returns the singleton timezone service.
// Uses singleton pattern because tzf.Finder loads timezone data into memory.
func NewService() (Service, error) {
	var err error
	once.Do(func() {
		finder, findErr := tzf.NewDefaultFinder()
		if findErr != nil {
			err = fmt.Errorf("failed to initialize timezone finder: %w", findErr)
			return
		}
		instance = &service{finder: finder}
	})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("timezone finder initialization previously failed")
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates.
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("no timezone found for coordinates (%.4f, %.4f)", latitude, longitude)
	}
	return name, nil
}

// GetLocation returns the loaded *time.Location for the given coordinates.
func (s *service) GetLocation(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone location %s: %w", name, err)
	}
	return loc, nil
}
