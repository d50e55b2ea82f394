package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/svclab/user-weather-services/internal/api/http"
	"github.com/svclab/user-weather-services/internal/config"
	"github.com/svclab/user-weather-services/internal/docstore"
	"github.com/svclab/user-weather-services/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store docstore.Store
	if cfg.StoreBackend == "memory" {
		log.Println("user-api: using in-memory document store")
		store = docstore.NewMemoryStore()
	} else {
		store = docstore.NewMongoStore(cfg.MongoURL, cfg.DatabaseName, cfg.StoreTimeout)
	}

	service := users.NewService(store)

	app := fiber.New(fiber.Config{
		AppName:               "user-api",
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

	httpapi.RegisterUserRoutes(app, service, cfg.MaxPageSize)

	go func() {
		if err := app.Listen(":" + cfg.UserPort); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("user-api: listening on port %s", cfg.UserPort)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
