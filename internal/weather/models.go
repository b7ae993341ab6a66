package weather

// Record is the normalized flat weather record shape shared by the current
// measurement and every forecast prediction. Datetime is a pre-formatted
// local-time string (see NormalizeTimestamp); the numeric fields are copied
// from the provider payload without conversion or rounding.
type Record struct {
	Datetime              string  `json:"datetime" db:"datetime"`
	AirPressureAtSeaLevel float64 `json:"air_pressure_at_sea_level" db:"air_pressure_at_sea_level"`
	AirTemperature        float64 `json:"air_temperature" db:"air_temperature"`
	CloudAreaFraction     float64 `json:"cloud_area_fraction" db:"cloud_area_fraction"`
	RelativeHumidity      float64 `json:"relative_humidity" db:"relative_humidity"`
	WindFromDirection     float64 `json:"wind_from_direction" db:"wind_from_direction"`
	WindSpeed             float64 `json:"wind_speed" db:"wind_speed"`
}

// Measurement is a persisted current-conditions row.
type Measurement struct {
	ID       int64  `json:"id" db:"id"`
	Location string `json:"location" db:"location"`
	Record
}

// Prediction is a persisted forecast row linked to the measurement taken in
// the same pipeline run.
type Prediction struct {
	ID            int64  `json:"id" db:"id"`
	MeasurementID int64  `json:"measurement_id" db:"measurement_id"`
	Location      string `json:"location" db:"location"`
	Record
}

// ForecastPayload mirrors the met.no locationforecast response, decoded as-is.
// Structural validation happens in the payload processor, not here.
type ForecastPayload struct {
	Properties ForecastProperties `json:"properties"`
}

// ForecastProperties holds the payload metadata and the time series.
type ForecastProperties struct {
	Meta       ForecastMeta      `json:"meta"`
	Timeseries []TimeseriesEntry `json:"timeseries"`
}

// ForecastMeta carries the payload-level update timestamp.
type ForecastMeta struct {
	UpdatedAt string `json:"updated_at"`
}

// TimeseriesEntry is one point in the forecast time series.
type TimeseriesEntry struct {
	Time string    `json:"time"`
	Data EntryData `json:"data"`
}

// EntryData wraps the instantaneous values for one time-series entry.
type EntryData struct {
	Instant InstantData `json:"instant"`
}

// InstantData holds the detail values keyed by met.no field name.
type InstantData struct {
	Details map[string]float64 `json:"details"`
}
