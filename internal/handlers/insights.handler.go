package handlers

import (
	"shiftwatch/internal/app"
	insightsController "shiftwatch/internal/controllers/insights"

	"github.com/gofiber/fiber/v2"
)

type InsightsHandler struct {
	Handler
	controller *insightsController.InsightsController
}

func NewInsightsHandler(app app.App, router fiber.Router) *InsightsHandler {
	return &InsightsHandler{
		controller: app.InsightsController,
		Handler:    newHandler(app, router, "insights_handler"),
	}
}

func (h *InsightsHandler) Register() {
	insights := h.router.Group("/insights")
	insights.Get("/coverage", h.getCoverage)
	insights.Get("/gaps", h.getGaps)
	insights.Get("/coverage-suggestions", h.getPreview)
	insights.Get("/predictive", h.getPredictive)

	h.router.Get("/employees/:id/break-allowance", h.getBreakAllowance)
}

func (h *InsightsHandler) getCoverage(c *fiber.Ctx) error {
	result, err := h.controller.ComputeCoverage(c.Context(), c.Query("department"))
	if err != nil {
		return h.fail(c, "getCoverage", "failed to compute coverage", err)
	}

	return c.JSON(fiber.Map{"message": "success", "coverage": result})
}

func (h *InsightsHandler) getGaps(c *fiber.Ctx) error {
	department := c.Query("department")
	gaps, err := h.controller.DetailedGaps(c.Context(), department)
	if err != nil {
		return h.fail(c, "getGaps", "failed to find gaps", err)
	}

	return c.JSON(fiber.Map{"message": "success", "department": department, "gaps": gaps})
}

func (h *InsightsHandler) getPreview(c *fiber.Ctx) error {
	department := c.Query("department")
	rows, err := h.controller.PreviewCoverageSuggestions(c.Context(), department)
	if err != nil {
		return h.fail(c, "getPreview", "failed to preview coverage suggestions", err)
	}

	return c.JSON(fiber.Map{"message": "success", "department": department, "suggestions": rows})
}

func (h *InsightsHandler) getPredictive(c *fiber.Ctx) error {
	insights, err := h.controller.PredictiveInsights(c.Context())
	if err != nil {
		return h.fail(c, "getPredictive", "failed to compute insights", err)
	}

	return c.JSON(fiber.Map{"message": "success", "insights": insights})
}

func (h *InsightsHandler) getBreakAllowance(c *fiber.Ctx) error {
	id, ok, err := h.idParam(c, "id")
	if !ok {
		return err
	}

	allowance, err := h.controller.BreakAllowance(c.Context(), id, c.Query("day"))
	if err != nil {
		return h.fail(c, "getBreakAllowance", "failed to compute break allowance", err)
	}

	return c.JSON(fiber.Map{"message": "success", "breakAllowance": allowance})
}
