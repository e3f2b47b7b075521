package forecast

import (
	"time"

	"sunfutures/internal/types"
	"sunfutures/internal/weather"
)

// Request is the full forecast input. Losses and horizon are optional and
// default server-side; equipment file refs point at prior uploads.
type Request struct {
	Location       types.Location           `json:"location" binding:"required"`
	Plant          types.PlantConfig        `json:"plant" binding:"required"`
	Losses         *types.LossConfig        `json:"losses,omitempty"`
	EquipmentFiles []types.EquipmentFileRef `json:"equipment_files,omitempty"`
	HorizonDays    int                      `json:"horizon_days,omitempty"`
}

// SourcesUsed records, per upstream source, whether it contributed and how
// it degraded, plus which branch produced the probabilistic bands. Consumers
// never have to infer provenance.
type SourcesUsed struct {
	Hourly     weather.SourceStatus `json:"hourly"`
	Grid       weather.SourceStatus `json:"grid"`
	Ensemble   weather.SourceStatus `json:"ensemble"`
	BandSource types.BandSource     `json:"band_source"`
}

// Response is the daily energy series with bands and provenance.
type Response struct {
	SiteName    string                    `json:"site_name,omitempty"`
	Timezone    string                    `json:"timezone"`
	HorizonDays int                       `json:"horizon_days"`
	Daily       []types.DailyYield        `json:"daily"`
	Bands       []types.ProbabilisticBand `json:"bands"`
	Sources     SourcesUsed               `json:"sources"`
	Notes       []string                  `json:"notes,omitempty"`
	GeneratedAt time.Time                 `json:"generated_at"`
}
