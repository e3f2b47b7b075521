package types

// FileKind classifies an uploaded equipment descriptor file.
type FileKind string

const (
	FileKindPAN   FileKind = "PAN"
	FileKindOND   FileKind = "OND"
	FileKindOther FileKind = "OTHER"
)

// EquipmentFileRef points at an already-uploaded equipment file.
type EquipmentFileRef struct {
	FileID   string   `json:"file_id"`
	Filename string   `json:"filename"`
	Kind     FileKind `json:"kind"`
}

// EquipmentProfile carries refined power-model parameters derived from
// equipment descriptors. Every field is independently optional; a nil field
// means the power model's own default applies.
type EquipmentProfile struct {
	GammaPmpPerC       *float64 `json:"gamma_pmp_per_c,omitempty"`
	InverterEfficiency *float64 `json:"inverter_efficiency,omitempty"`
	InverterACMaxKW    *float64 `json:"inverter_ac_max_kw,omitempty"`
}

// Empty reports whether the profile refines nothing.
func (p EquipmentProfile) Empty() bool {
	return p.GammaPmpPerC == nil && p.InverterEfficiency == nil && p.InverterACMaxKW == nil
}

// Merge overlays non-nil fields from other onto a copy of p.
func (p EquipmentProfile) Merge(other EquipmentProfile) EquipmentProfile {
	out := p
	if other.GammaPmpPerC != nil {
		out.GammaPmpPerC = other.GammaPmpPerC
	}
	if other.InverterEfficiency != nil {
		out.InverterEfficiency = other.InverterEfficiency
	}
	if other.InverterACMaxKW != nil {
		out.InverterACMaxKW = other.InverterACMaxKW
	}
	return out
}
