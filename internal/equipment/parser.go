package equipment

import (
	"regexp"
	"strconv"
	"strings"

	"sunfutures/internal/types"
)

// Parser derives an optional parameter refinement from raw equipment file
// bytes. Fields a parser cannot confidently derive stay absent so the power
// model's own defaulting applies uniformly.
type Parser interface {
	Kind() types.FileKind
	Parse(data []byte) (types.EquipmentProfile, error)
}

var (
	keyValRe = regexp.MustCompile(`^\s*([^=:]+?)\s*[=:]\s*(.+?)\s*$`)
	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// parseKeyVals extracts lowercase key to raw value pairs from the loosely
// structured "key=value" / "key : value" lines both vendor formats use.
// Comment lines and lines without a separator are skipped.
func parseKeyVals(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		m := keyValRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out[strings.ToLower(m[1])] = m[2]
	}
	return out
}

// firstNumber pulls the first numeric token out of a raw value, tolerating
// trailing units like "%/degC" or "W".
func firstNumber(kv map[string]string, keys ...string) (float64, bool) {
	for _, key := range keys {
		raw, ok := kv[key]
		if !ok {
			continue
		}
		token := numberRe.FindString(raw)
		if token == "" {
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// PANParser extracts the module power temperature coefficient from a
// PVsyst-style .PAN file.
type PANParser struct{}

func (PANParser) Kind() types.FileKind { return types.FileKindPAN }

func (PANParser) Parse(data []byte) (types.EquipmentProfile, error) {
	kv := parseKeyVals(data)
	var profile types.EquipmentProfile
	if gamma, ok := firstNumber(kv, "mu_pmp", "gamma_pmp", "tempco_pmp", "tpcoeffpmax"); ok {
		// values above 0.05 in magnitude are %/degC, not 1/degC
		if gamma > 0.05 || gamma < -0.05 {
			gamma /= 100
		}
		profile.GammaPmpPerC = &gamma
	}
	return profile, nil
}

// ONDParser extracts nominal efficiency and AC power limit from a
// PVsyst-style .OND file.
type ONDParser struct{}

func (ONDParser) Kind() types.FileKind { return types.FileKindOND }

func (ONDParser) Parse(data []byte) (types.EquipmentProfile, error) {
	kv := parseKeyVals(data)
	var profile types.EquipmentProfile
	if eff, ok := firstNumber(kv, "eff", "effnom", "eff_nominal", "eta", "efficiency"); ok {
		if eff > 1.5 {
			eff /= 100
		}
		profile.InverterEfficiency = &eff
	}
	if pac, ok := firstNumber(kv, "pac", "pacmax", "p_ac", "pmaxac", "p_ac_nom"); ok {
		if pac > 5000 {
			pac /= 1000
		}
		profile.InverterACMaxKW = &pac
	}
	return profile, nil
}
