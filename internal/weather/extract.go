package weather

import "fmt"

// detailFields are the met.no instant-details keys every record must carry.
var detailFields = []string{
	"air_pressure_at_sea_level",
	"air_temperature",
	"cloud_area_fraction",
	"relative_humidity",
	"wind_from_direction",
	"wind_speed",
}

// ExtractRecord copies the six numeric detail fields plus a pre-formatted
// datetime into the canonical record shape. Values are taken as-is, with no
// unit conversion or rounding. A missing key fails extraction rather than
// silently omitting a field.
func ExtractRecord(datetime string, details map[string]float64) (Record, error) {
	for _, f := range detailFields {
		if _, ok := details[f]; !ok {
			return Record{}, fmt.Errorf("%w: %s", ErrMissingField, f)
		}
	}

	return Record{
		Datetime:              datetime,
		AirPressureAtSeaLevel: details["air_pressure_at_sea_level"],
		AirTemperature:        details["air_temperature"],
		CloudAreaFraction:     details["cloud_area_fraction"],
		RelativeHumidity:      details["relative_humidity"],
		WindFromDirection:     details["wind_from_direction"],
		WindSpeed:             details["wind_speed"],
	}, nil
}
