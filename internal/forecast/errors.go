package forecast

import "errors"

// Request-level error taxonomy. Partial-source degradation and equipment
// parse failures are notes on the response, not errors.
var (
	// ErrInvalidConfiguration marks a request rejected before any upstream
	// call: bad coordinates, capacities, angles or loss fractions.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUpstreamUnavailable marks a request that failed because the required
	// hourly weather source could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream weather source unavailable")

	// ErrCacheUnavailable marks a cache backend outage surfaced by health
	// probes. Forecast requests never fail on it.
	ErrCacheUnavailable = errors.New("forecast cache unavailable")
)
