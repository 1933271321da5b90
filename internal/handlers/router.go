package handlers

import (
	"errors"

	"shiftwatch/config"
	"shiftwatch/internal/app"
	"shiftwatch/internal/handlers/middleware"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, file string) Handler {
	return Handler{
		log:        logger.New("handlers").File(file),
		router:     router,
		middleware: app.Middleware,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.LogRequests)
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAdminHandler(*app, api).Register()
	NewInsightsHandler(*app, api).Register()
	NewSuggestionHandler(*app, api).Register()
	NewEmployeeHandler(*app, api).Register()
	NewTimeOffHandler(*app, api).Register()
	NewAnnouncementHandler(*app, api).Register()

	return nil
}

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":          "success",
			"status":           "ok",
			"cache":            config.CacheEnabled(),
			"crisisDepartment": config.EngineCrisisDepartment,
		})
	})
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// fail logs err and answers with the status its sentinel maps to.
func (h Handler) fail(c *fiber.Ctx, function, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		status = fiber.StatusConflict
	}

	log := h.log.Function(function)
	if status == fiber.StatusInternalServerError {
		log.Er(message, err)
	} else {
		log.Debug(message, "status", status, "error", err)
	}

	return c.Status(status).JSON(fiber.Map{"message": message, "error": err.Error()})
}

func (h Handler) badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

// parseBody decodes the request body, answering 400 itself on failure.
func (h Handler) parseBody(c *fiber.Ctx, function string, target any) (bool, error) {
	if err := c.BodyParser(target); err != nil {
		h.log.Function(function).Debug("failed to parse request body", "error", err)
		return false, h.badRequest(c, "failed to parse request body")
	}
	return true, nil
}

// idParam reads a positive integer route parameter, answering 400 itself
// when it is malformed.
func (h Handler) idParam(c *fiber.Ctx, name string) (int, bool, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false, h.badRequest(c, name+" must be a positive integer")
	}
	return id, true, nil
}
