package ensemble

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"sunfutures/internal/providers/openmeteo"
	"sunfutures/internal/pv"
	"sunfutures/internal/types"
)

// Monte Carlo fallback parameters. Perturbation sigmas widen linearly with
// lead time up to the widening horizon, then hold.
const (
	mcRuns          = 40
	mcSeed          = 7
	wideningHours   = 168
	cloudSigmaMin   = 8.0
	cloudSigmaMax   = 22.0
	tempSigmaMin    = 1.0
	tempSigmaMax    = 3.0
	windSigmaMin    = 0.5
	windSigmaMax    = 1.5
	ensembleTimeFmt = "2006-01-02T15:04"
)

// Inputs carries everything the engine needs to rerun the power model.
type Inputs struct {
	Location types.Location
	Plant    types.PlantConfig
	Losses   types.LossConfig
	Params   pv.ModelParams
	Timezone *time.Location
	Horizon  int
}

// Result is the band series plus the branch that produced it.
type Result struct {
	Bands  []types.ProbabilisticBand
	Source types.BandSource
	Note   string
}

// Engine produces daily P10/P50/P90 yield bands from real ensemble members
// when available and from a seeded Monte Carlo perturbation otherwise.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("component", "ensemble_engine")}
}

// Bands selects the band branch. The real branch is attempted when ens is
// non-nil and decodes cleanly; any failure falls through to the synthetic
// branch, never to a third state.
func (e *Engine) Bands(ctx context.Context, ens *openmeteo.EnsembleAPIResponse, series types.WeatherSeries, p50 []types.DailyYield, in Inputs) Result {
	if ens != nil {
		bands, err := e.realBands(ctx, ens, in)
		if err == nil && len(bands) > 0 {
			note := ""
			if len(bands) < in.Horizon {
				note = fmt.Sprintf("ensemble bands cover %d of %d days", len(bands), in.Horizon)
			}
			return Result{Bands: bands, Source: types.BandSourceRealEnsemble, Note: note}
		}
		if err != nil {
			e.logger.Warn("ensemble decode failed, falling back to synthetic bands", "error", err)
		}
	}
	bands := e.syntheticBands(series, p50, in)
	return Result{Bands: bands, Source: types.BandSourceSyntheticEnsemble}
}

// realBands runs the power pipeline once per ensemble member and takes
// empirical percentiles of the daily energy across members.
func (e *Engine) realBands(ctx context.Context, ens *openmeteo.EnsembleAPIResponse, in Inputs) ([]types.ProbabilisticBand, error) {
	times, err := ens.Times()
	if err != nil {
		return nil, fmt.Errorf("parsing ensemble times: %w", err)
	}
	radiation, err := ens.MemberSeries("shortwave_radiation")
	if err != nil {
		return nil, fmt.Errorf("decoding shortwave radiation members: %w", err)
	}
	temperature, err := ens.MemberSeries("temperature_2m")
	if err != nil {
		return nil, fmt.Errorf("decoding temperature members: %w", err)
	}
	wind, err := ens.MemberSeries("wind_speed_10m")
	if err != nil {
		return nil, fmt.Errorf("decoding wind members: %w", err)
	}
	members := len(radiation)
	if len(temperature) < members {
		members = len(temperature)
	}
	if len(wind) < members {
		members = len(wind)
	}
	if members < 2 {
		return nil, fmt.Errorf("ensemble has %d usable members, need at least 2", members)
	}

	parsed := make([]time.Time, len(times))
	for i, raw := range times {
		t, err := time.Parse(ensembleTimeFmt, raw)
		if err != nil {
			return nil, fmt.Errorf("parsing ensemble timestamp %q: %w", raw, err)
		}
		parsed[i] = t.UTC()
	}

	memberDaily := make([][]types.DailyYield, members)
	g, _ := errgroup.WithContext(ctx)
	for m := 0; m < members; m++ {
		g.Go(func() error {
			hours := make([]pv.HourlyPower, 0, len(parsed))
			for i, t := range parsed {
				if i >= len(radiation[m]) || i >= len(temperature[m]) || i >= len(wind[m]) {
					break
				}
				sample := types.WeatherSample{
					Time:         t,
					TemperatureC: temperature[m][i],
					WindSpeedMPS: wind[m][i],
					Source:       types.SourceHourly,
				}
				hours = append(hours, pv.ComputePowerFromGHI(sample, radiation[m][i], in.Location, in.Plant, in.Losses, in.Params))
			}
			memberDaily[m] = pv.AggregateDaily(hours, in.Timezone, in.Horizon)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	days := len(memberDaily[0])
	for m := 1; m < members; m++ {
		if len(memberDaily[m]) < days {
			days = len(memberDaily[m])
		}
	}
	if days == 0 {
		return nil, fmt.Errorf("ensemble members produced no complete days")
	}

	bands := make([]types.ProbabilisticBand, 0, days)
	sample := make([]float64, members)
	for d := 0; d < days; d++ {
		for m := 0; m < members; m++ {
			sample[m] = memberDaily[m][d].KWh
		}
		bands = append(bands, types.ProbabilisticBand{
			Date:   memberDaily[0][d].Date,
			P10KWh: percentile(sample, 10),
			P50KWh: percentile(sample, 50),
			P90KWh: percentile(sample, 90),
		})
	}
	return bands, nil
}

// syntheticBands perturbs the deterministic weather series with seeded
// Gaussian noise whose sigma grows with lead time, reruns the power model
// per run, and takes empirical daily percentiles. The P50 is pinned to the
// deterministic series and the relative spread is forced non-decreasing in
// lead time so bands never narrow on later days.
func (e *Engine) syntheticBands(series types.WeatherSeries, p50 []types.DailyYield, in Inputs) []types.ProbabilisticBand {
	if len(series) == 0 || len(p50) == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(mcSeed))
	start := series[0].Time

	runDaily := make([][]types.DailyYield, mcRuns)
	for run := 0; run < mcRuns; run++ {
		hours := make([]pv.HourlyPower, 0, len(series))
		for _, s := range series {
			lead := s.Time.Sub(start).Hours()
			frac := math.Min(1, math.Max(0, lead/wideningHours))
			perturbed := s
			perturbed.CloudCoverPct = clamp(s.CloudCoverPct+rng.NormFloat64()*lerp(cloudSigmaMin, cloudSigmaMax, frac), 0, 100)
			perturbed.TemperatureC = s.TemperatureC + rng.NormFloat64()*lerp(tempSigmaMin, tempSigmaMax, frac)
			perturbed.WindSpeedMPS = math.Max(0, s.WindSpeedMPS+rng.NormFloat64()*lerp(windSigmaMin, windSigmaMax, frac))
			hours = append(hours, pv.ComputePower(perturbed, in.Location, in.Plant, in.Losses, in.Params))
		}
		runDaily[run] = pv.AggregateDaily(hours, in.Timezone, in.Horizon)
	}

	days := len(p50)
	for run := 0; run < mcRuns; run++ {
		if len(runDaily[run]) < days {
			days = len(runDaily[run])
		}
	}

	bands := make([]types.ProbabilisticBand, 0, days)
	sample := make([]float64, mcRuns)
	maxRelSpread := 0.0
	for d := 0; d < days; d++ {
		for run := 0; run < mcRuns; run++ {
			sample[run] = runDaily[run][d].KWh
		}
		p10 := percentile(sample, 10)
		p90 := percentile(sample, 90)
		mid := p50[d].KWh
		if p10 > mid {
			p10 = mid
		}
		if p90 < mid {
			p90 = mid
		}
		if mid > 0 {
			rel := (p90 - p10) / mid
			if rel < maxRelSpread {
				half := maxRelSpread * mid / 2
				p10 = math.Max(0, mid-half)
				p90 = mid + half
			} else {
				maxRelSpread = rel
			}
		}
		bands = append(bands, types.ProbabilisticBand{
			Date:   p50[d].Date,
			P10KWh: p10,
			P50KWh: mid,
			P90KWh: p90,
		})
	}
	return bands
}

func lerp(lo, hi, frac float64) float64 {
	return lo + (hi-lo)*frac
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// percentile is the linear-interpolation empirical percentile over a copy
// of values.
func percentile(values []float64, pct float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
