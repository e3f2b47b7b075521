package equipment

import (
	"testing"

	"sunfutures/internal/types"
)

func TestPANParser(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantGamma *float64
	}{
		{
			name:      "gamma as fraction",
			input:     "Model = SF-450\nmu_pmp = -0.0034\n",
			wantGamma: f(-0.0034),
		},
		{
			name:      "gamma in percent per degC converts",
			input:     "gamma_pmp : -0.34 %/degC\n",
			wantGamma: f(-0.0034),
		},
		{
			name:      "alias tempco_pmp",
			input:     "TempCo_Pmp=-0.0040",
			wantGamma: f(-0.004),
		},
		{
			name:      "comments and blanks skipped",
			input:     "# header\n; vendor note\n\nmu_pmp = -0.0030\n",
			wantGamma: f(-0.003),
		},
		{
			name:      "no recognizable keys",
			input:     "Model = SF-450\nPmpp = 450 W\n",
			wantGamma: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := PANParser{}.Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if tt.wantGamma == nil {
				if profile.GammaPmpPerC != nil {
					t.Errorf("gamma = %v, want absent", *profile.GammaPmpPerC)
				}
				return
			}
			if profile.GammaPmpPerC == nil {
				t.Fatal("gamma absent, want value")
			}
			if diff := *profile.GammaPmpPerC - *tt.wantGamma; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("gamma = %v, want %v", *profile.GammaPmpPerC, *tt.wantGamma)
			}
		})
	}
}

func TestONDParser(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantEff  *float64
		wantPac  *float64
	}{
		{
			name:    "efficiency as percent converts",
			input:   "EffNom = 98.5\n",
			wantEff: f(0.985),
		},
		{
			name:    "efficiency already a fraction",
			input:   "eta : 0.975\n",
			wantEff: f(0.975),
		},
		{
			name:    "pac in watts converts to kW",
			input:   "PacMax = 250000 W\n",
			wantPac: f(250),
		},
		{
			name:    "pac already in kW",
			input:   "pac = 3600\n",
			wantPac: f(3600),
		},
		{
			name:    "both fields",
			input:   "eff = 97\npac = 125000\n",
			wantEff: f(0.97),
			wantPac: f(125),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ONDParser{}.Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			checkOptional(t, "efficiency", profile.InverterEfficiency, tt.wantEff)
			checkOptional(t, "pac max", profile.InverterACMaxKW, tt.wantPac)
		})
	}
}

func TestParserKinds(t *testing.T) {
	if (PANParser{}).Kind() != types.FileKindPAN {
		t.Error("PANParser kind mismatch")
	}
	if (ONDParser{}).Kind() != types.FileKindOND {
		t.Error("ONDParser kind mismatch")
	}
}

func f(v float64) *float64 { return &v }

func checkOptional(t *testing.T, name string, got, want *float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s = %v, want absent", name, *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s absent, want %v", name, *want)
	}
	if diff := *got - *want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("%s = %v, want %v", name, *got, *want)
	}
}
