package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/svclab/user-weather-services/internal/api/http"
	"github.com/svclab/user-weather-services/internal/config"
	"github.com/svclab/user-weather-services/internal/docstore"
	"github.com/svclab/user-weather-services/internal/notify"
	"github.com/svclab/user-weather-services/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store docstore.Store
	if cfg.StoreBackend == "memory" {
		log.Println("weather-api: using in-memory document store")
		store = docstore.NewMemoryStore()
	} else {
		store = docstore.NewMongoStore(cfg.MongoURL, cfg.DatabaseName, cfg.StoreTimeout)
	}

	// Shared HTTP client for outbound provider and subscriber calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	fetcher := weather.NewOpenWeatherFetcher(httpClient, cfg.WeatherAPIURL, cfg.WeatherAPIKey)
	fanout := notify.NewFanout(httpClient)
	service := weather.NewService(fetcher, store, fanout, cfg.Subscribers)

	// Resolve configured locations once at startup; workers read them
	// from the locations endpoint.
	locations := weather.ResolveCoordinates(cfg.GeocoderAPIKey, cfg.Locations)

	app := fiber.New(fiber.Config{
		AppName:               "weather-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	})

	httpapi.RegisterWeatherRoutes(app, service, locations)

	go func() {
		if err := app.Listen(":" + cfg.WeatherPort); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("weather-api: listening on port %s", cfg.WeatherPort)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
