package weather

import "fmt"

// forecastHorizon caps how many future time-series entries become
// predictions per run.
const forecastHorizon = 59

func validatePayload(p *ForecastPayload) error {
	if p == nil || p.Properties.Timeseries == nil {
		return fmt.Errorf("%w: properties.timeseries is absent", ErrMalformedPayload)
	}
	if p.Properties.Meta.UpdatedAt == "" {
		return fmt.Errorf("%w: properties.meta.updated_at is absent", ErrMalformedPayload)
	}
	return nil
}

// CurrentMeasurement builds the single current-conditions record from the
// first time-series entry. Its timestamp comes from the payload-level
// updated_at, not the entry's own time.
func CurrentMeasurement(p *ForecastPayload) (Record, error) {
	if err := validatePayload(p); err != nil {
		return Record{}, err
	}
	if len(p.Properties.Timeseries) == 0 {
		return Record{}, fmt.Errorf("%w: timeseries is empty", ErrMalformedPayload)
	}

	datetime, err := NormalizeTimestamp(p.Properties.Meta.UpdatedAt)
	if err != nil {
		return Record{}, err
	}

	return ExtractRecord(datetime, p.Properties.Timeseries[0].Data.Instant.Details)
}

// ForecastRecords builds the ordered prediction records from time-series
// entries 1 through forecastHorizon inclusive, skipping entry 0 (the current
// reading). Each record uses the entry's own timestamp. A series shorter
// than the horizon simply yields fewer records.
func ForecastRecords(p *ForecastPayload) ([]Record, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	series := p.Properties.Timeseries
	end := forecastHorizon + 1
	if len(series) < end {
		end = len(series)
	}

	records := make([]Record, 0, end)
	for i := 1; i < end; i++ {
		entry := series[i]

		datetime, err := NormalizeTimestamp(entry.Time)
		if err != nil {
			return nil, err
		}

		rec, err := ExtractRecord(datetime, entry.Data.Instant.Details)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}
