package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

var validate = validator.New()

// PipelineRunner is the pipeline entry point the dashboard consumes. The
// dashboard never persists; it only displays what a run returns.
type PipelineRunner interface {
	Run(ctx context.Context, location string, persist bool) (weather.Record, []weather.Record, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, runner PipelineRunner) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var q weatherQuery
		q.Location = c.Query("location")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
		}

		measurement, predictions, err := runner.Run(c.Context(), q.Location, false)
		if err != nil {
			if errors.Is(err, weather.ErrLocationNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "location not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, "no weather data available")
		}

		return c.JSON(fiber.Map{
			"location":    q.Location,
			"measurement": measurement,
			"predictions": predictions,
		})
	})
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	Location string `validate:"required,max=50"`
}
