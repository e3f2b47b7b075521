package openmeteo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// EnsembleAPIResponse holds the ensemble forecast. Member series arrive as
// dynamically named keys ("shortwave_radiation", "shortwave_radiation_member01",
// ...), so the hourly block is kept raw and decoded on access.
type EnsembleAPIResponse struct {
	Latitude  float64                    `json:"latitude"`
	Longitude float64                    `json:"longitude"`
	Timezone  string                     `json:"timezone"`
	Hourly    map[string]json.RawMessage `json:"hourly"`
}

// Times decodes the shared hourly timestamp axis.
func (r *EnsembleAPIResponse) Times() ([]string, error) {
	raw, ok := r.Hourly["time"]
	if !ok {
		return nil, fmt.Errorf("ensemble response missing hourly time axis")
	}
	var times []string
	if err := json.Unmarshal(raw, &times); err != nil {
		return nil, fmt.Errorf("failed to decode time axis: %w", err)
	}
	return times, nil
}

// MemberSeries decodes every member of one hourly variable, ordered by member
// number with the control member first. Null values decode as NaN-free zeros,
// so a short or malformed member array is reported as an error instead.
func (r *EnsembleAPIResponse) MemberSeries(variable string) ([][]float64, error) {
	type member struct {
		num    int
		values []float64
	}

	var members []member
	prefix := variable + "_member"
	for key, raw := range r.Hourly {
		num := -1
		switch {
		case key == variable:
			num = 0 // control
		case strings.HasPrefix(key, prefix):
			n, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
			if err != nil {
				continue
			}
			num = n
		default:
			continue
		}

		var values []float64
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("failed to decode member %q: %w", key, err)
		}
		members = append(members, member{num: num, values: values})
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("ensemble response has no members for %q", variable)
	}

	sort.Slice(members, func(i, j int) bool { return members[i].num < members[j].num })

	out := make([][]float64, 0, len(members))
	want := len(members[0].values)
	for _, m := range members {
		if len(m.values) != want {
			return nil, fmt.Errorf("member length mismatch for %q: %d vs %d", variable, len(m.values), want)
		}
		out = append(out, m.values)
	}
	return out, nil
}
