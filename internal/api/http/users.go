package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/svclab/user-weather-services/internal/docstore"
	"github.com/svclab/user-weather-services/internal/users"
)

// RegisterUserRoutes wires the user CRUD handlers into the Fiber app.
func RegisterUserRoutes(app *fiber.App, svc *users.Service, maxPageSize int) {
	api := app.Group("/api/user")

	api.Get("/", func(c *fiber.Ctx) error {
		window := docstore.ResolveWindow(c.Query("page"), c.Query("size"), maxPageSize)

		docs, err := svc.List(c.Context(), window)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(docs)
	})

	api.Get("/:id", func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(err)
		}
		return c.JSON(doc)
	})

	api.Post("/", func(c *fiber.Ctx) error {
		var doc docstore.Document
		if err := c.BodyParser(&doc); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		result, err := svc.Create(c.Context(), doc)
		if err != nil {
			return storeError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	api.Put("/:id", func(c *fiber.Ctx) error {
		var fields docstore.Document
		if err := c.BodyParser(&fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		result, err := svc.Update(c.Context(), c.Params("id"), fields)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(result)
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		result, err := svc.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(err)
		}
		return c.JSON(result)
	})
}

// storeError translates document store sentinel errors into HTTP statuses.
func storeError(err error) error {
	switch {
	case errors.Is(err, docstore.ErrInvalidID):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, docstore.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "server error")
	}
}
