package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/svclab/user-weather-services/internal/docstore"
	"github.com/svclab/user-weather-services/internal/weather"
)

var validate = validator.New()

// RegisterWeatherRoutes wires the weather ingestion handlers into the
// Fiber app. locations is the configured set served to workers.
func RegisterWeatherRoutes(app *fiber.App, svc *weather.Service, locations []weather.Location) {
	api := app.Group("/api/weather")

	api.Get("/locations", func(c *fiber.Ctx) error {
		if locations == nil {
			return c.JSON([]weather.Location{})
		}
		return c.JSON(locations)
	})

	api.Get("/", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		payload, err := svc.FetchAndRecord(c.Context(), q)
		if err != nil {
			// Missing parameters and upstream faults alike are the
			// caller's 400; persistence failures never reach here.
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(payload)
	})

	api.Post("/", func(c *fiber.Ctx) error {
		var doc docstore.Document
		if err := c.BodyParser(&doc); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		result, err := svc.IngestAndNotify(c.Context(), doc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "server error")
		}
		return c.JSON(result)
	})
}

// weatherQuery holds the raw location query parameters. Coordinates must be
// valid when present; which combination of fields suffices is decided by the
// fetch selection rule, not here.
type weatherQuery struct {
	Lat     string `validate:"omitempty,latitude"`
	Lon     string `validate:"omitempty,longitude"`
	City    string
	State   string
	Country string
}

func parseWeatherQuery(c *fiber.Ctx) (weather.Query, error) {
	q := weatherQuery{
		Lat:     c.Query("lat"),
		Lon:     c.Query("lon"),
		City:    c.Query("city"),
		State:   c.Query("state"),
		Country: c.Query("country"),
	}

	if err := validate.Struct(q); err != nil {
		return weather.Query{}, err
	}

	return weather.Query{
		Lat:     q.Lat,
		Lon:     q.Lon,
		City:    q.City,
		State:   q.State,
		Country: q.Country,
	}, nil
}
