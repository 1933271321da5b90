package handlers

import (
	"shiftwatch/internal/app"
	suggestionController "shiftwatch/internal/controllers/suggestions"
	. "shiftwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SuggestionHandler struct {
	Handler
	controller *suggestionController.SuggestionController
}

func NewSuggestionHandler(app app.App, router fiber.Router) *SuggestionHandler {
	return &SuggestionHandler{
		controller: app.SuggestionController,
		Handler:    newHandler(app, router, "suggestion_handler"),
	}
}

func (h *SuggestionHandler) Register() {
	suggestions := h.router.Group("/suggestions")
	suggestions.Get("/", h.getSuggestions)
	suggestions.Get("/:id", h.getSuggestion)
	suggestions.Post("/generate", h.middleware.RequireAdmin, h.generate)
	suggestions.Patch("/:id/status", h.middleware.RequireAdmin, h.updateStatus)
}

func (h *SuggestionHandler) getSuggestions(c *fiber.Ctx) error {
	suggestions, err := h.controller.List(c.Context(), c.Query("status"))
	if err != nil {
		return h.fail(c, "getSuggestions", "failed to get suggestions", err)
	}

	return c.JSON(fiber.Map{"message": "success", "suggestions": suggestions})
}

func (h *SuggestionHandler) getSuggestion(c *fiber.Ctx) error {
	suggestion, err := h.controller.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "getSuggestion", "failed to get suggestion", err)
	}

	return c.JSON(fiber.Map{"message": "success", "suggestion": suggestion})
}

func (h *SuggestionHandler) generate(c *fiber.Ctx) error {
	var request GenerateSuggestionsRequest
	if len(c.Body()) > 0 {
		if ok, err := h.parseBody(c, "generate", &request); !ok {
			return err
		}
	}
	if request.Scope == "" {
		request.Scope = c.Query("scope")
	}

	created, err := h.controller.Generate(c.Context(), request.Scope)
	if err != nil {
		return h.fail(c, "generate", "failed to generate suggestions", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "count": len(created), "suggestions": created})
}

func (h *SuggestionHandler) updateStatus(c *fiber.Ctx) error {
	var request UpdateStatusRequest
	if ok, err := h.parseBody(c, "updateStatus", &request); !ok {
		return err
	}

	result, err := h.controller.UpdateStatus(c.Context(), c.Params("id"), request.Status)
	if err != nil {
		return h.fail(c, "updateStatus", "failed to update suggestion status", err)
	}

	return c.JSON(fiber.Map{
		"message":            "success",
		"suggestion":         result.Suggestion,
		"task":               result.Task,
		"executedSideEffect": result.ExecutedSideEffect,
	})
}
