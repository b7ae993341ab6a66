package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/i474232898/yrno-weather-pipeline/internal/common"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

const (
	measurementsTable = "yrno_measurements"
	predictionsTable  = "yrno_predictions"
)

// PostgresConfig holds connection parameters for the weather database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Postgres is the relational Store implementation backed by sqlx + lib/pq.
// Every operation retries transient connection failures with backoff;
// constraint violations fail immediately. A retried insert that partially
// committed can produce duplicate rows on the next attempt; callers needing
// exactly-once effects must add idempotency keys.
type Postgres struct {
	db    *sqlx.DB
	retry common.RetryConfig
}

// Connect opens and pings the database.
func Connect(cfg PostgresConfig) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to weather database: %w", err)
	}

	return NewPostgres(db), nil
}

// NewPostgres wraps an existing database handle.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{
		db:    db,
		retry: common.DefaultRetry,
	}
}

// Close releases the underlying connection pool.
func (s *Postgres) Close() error {
	return s.db.Close()
}

// classify wraps a database error into the pipeline taxonomy. Constraint
// violations (pq class 23, e.g. a foreign-key violation from inserting
// predictions out of order) are terminal; everything else is assumed to be a
// connection-level failure worth retrying.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: constraint violation: %v", weather.ErrPersistence, err)
	}
	if common.HasAny(err.Error(), "syntax error", "does not exist", "permission denied") {
		return fmt.Errorf("%w: %v", weather.ErrPersistence, err)
	}
	return weather.Transient(fmt.Errorf("%w: %v", weather.ErrPersistence, err))
}

// EnsureSchema creates the measurement and prediction tables if absent.
// Safe to call every run.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	return common.Retry(ctx, s.retry, weather.IsRetryable, func() error {
		_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				location VARCHAR(50),
				datetime TIMESTAMP,
				air_pressure_at_sea_level FLOAT,
				air_temperature FLOAT,
				cloud_area_fraction FLOAT,
				relative_humidity FLOAT,
				wind_from_direction FLOAT,
				wind_speed FLOAT
			)`, measurementsTable))
		if err != nil {
			return classify(err)
		}

		_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id SERIAL PRIMARY KEY,
				measurement_id INT REFERENCES %s(id),
				location VARCHAR(50),
				datetime TIMESTAMP,
				air_pressure_at_sea_level FLOAT,
				air_temperature FLOAT,
				cloud_area_fraction FLOAT,
				relative_humidity FLOAT,
				wind_from_direction FLOAT,
				wind_speed FLOAT
			)`, predictionsTable, measurementsTable))
		if err != nil {
			return classify(err)
		}
		return nil
	})
}

// InsertMeasurement inserts one measurement row and returns its generated
// id. All values are bound as typed parameters.
func (s *Postgres) InsertMeasurement(ctx context.Context, location string, rec weather.Record) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			location,
			datetime,
			air_pressure_at_sea_level,
			air_temperature,
			cloud_area_fraction,
			relative_humidity,
			wind_from_direction,
			wind_speed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`, measurementsTable)

	var id int64
	err := common.Retry(ctx, s.retry, weather.IsRetryable, func() error {
		row := s.db.QueryRowxContext(ctx, query,
			location,
			rec.Datetime,
			rec.AirPressureAtSeaLevel,
			rec.AirTemperature,
			rec.CloudAreaFraction,
			rec.RelativeHumidity,
			rec.WindFromDirection,
			rec.WindSpeed,
		)
		if err := row.Scan(&id); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("store: inserted measurement %d for %q", id, location)
	return id, nil
}

// InsertPredictions stamps every record with measurementID and performs a
// single batched multi-row insert. An empty batch is a no-op.
func (s *Postgres) InsertPredictions(ctx context.Context, measurementID int64, location string, recs []weather.Record) error {
	if len(recs) == 0 {
		return nil
	}

	predictions := make([]weather.Prediction, 0, len(recs))
	for _, rec := range recs {
		predictions = append(predictions, weather.Prediction{
			MeasurementID: measurementID,
			Location:      location,
			Record:        rec,
		})
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			measurement_id,
			location,
			datetime,
			air_pressure_at_sea_level,
			air_temperature,
			cloud_area_fraction,
			relative_humidity,
			wind_from_direction,
			wind_speed
		) VALUES (
			:measurement_id,
			:location,
			:datetime,
			:air_pressure_at_sea_level,
			:air_temperature,
			:cloud_area_fraction,
			:relative_humidity,
			:wind_from_direction,
			:wind_speed
		)`, predictionsTable)

	err := common.Retry(ctx, s.retry, weather.IsRetryable, func() error {
		if _, err := s.db.NamedExecContext(ctx, query, predictions); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("store: inserted %d predictions for measurement %d", len(predictions), measurementID)
	return nil
}
