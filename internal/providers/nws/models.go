package nws

// PointAPIResponse is the /points/{lat},{lon} response.
type PointAPIResponse struct {
	Properties struct {
		GridId           string `json:"gridId"`
		GridX            int    `json:"gridX"`
		GridY            int    `json:"gridY"`
		Forecast         string `json:"forecast"`
		ForecastHourly   string `json:"forecastHourly"`
		ForecastGridData string `json:"forecastGridData"`
		TimeZone         string `json:"timeZone"`
	} `json:"properties"`
}

// HourlyForecastAPIResponse is the gridpoints .../forecast/hourly response.
type HourlyForecastAPIResponse struct {
	Properties struct {
		Periods []HourlyPeriod `json:"periods"`
	} `json:"properties"`
}

// HourlyPeriod is a single hour of the point forecast.
type HourlyPeriod struct {
	StartTime       string   `json:"startTime"`
	Temperature     float64  `json:"temperature"`
	TemperatureUnit string   `json:"temperatureUnit"`
	WindSpeed       string   `json:"windSpeed"` // e.g. "10 mph" or "5 to 10 mph"
	SkyCover        *float64 `json:"skyCover,omitempty"`
	ShortForecast   string   `json:"shortForecast"`
}

// GridForecastAPIResponse is the gridpoints/{wfo}/{x},{y} raw grid response.
// Grid values carry ISO-8601 validTime ranges that can span multiple hours.
type GridForecastAPIResponse struct {
	Properties struct {
		Temperature GridLayer `json:"temperature"`
		WindSpeed   GridLayer `json:"windSpeed"`
		SkyCover    GridLayer `json:"skyCover"`
	} `json:"properties"`
}

// GridLayer is one measured variable of the grid response.
type GridLayer struct {
	UOM    string      `json:"uom"`
	Values []GridValue `json:"values"`
}

// GridValue is a single validTime/value pair like
// {"validTime": "2026-02-14T18:00:00+00:00/PT3H", "value": 23}.
type GridValue struct {
	ValidTime string   `json:"validTime"`
	Value     *float64 `json:"value"`
}
