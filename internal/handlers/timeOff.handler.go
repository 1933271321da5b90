package handlers

import (
	"shiftwatch/internal/app"
	timeOffController "shiftwatch/internal/controllers/timeoff"
	. "shiftwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TimeOffHandler struct {
	Handler
	controller *timeOffController.TimeOffController
}

func NewTimeOffHandler(app app.App, router fiber.Router) *TimeOffHandler {
	return &TimeOffHandler{
		controller: app.TimeOffController,
		Handler:    newHandler(app, router, "timeOff_handler"),
	}
}

func (h *TimeOffHandler) Register() {
	h.router.Get("/employees/:id/time-off", h.getByEmployee)

	timeOff := h.router.Group("/time-off")
	timeOff.Post("/", h.createTimeOff)
	timeOff.Patch("/:id/status", h.middleware.RequireAdmin, h.updateStatus)
}

func (h *TimeOffHandler) getByEmployee(c *fiber.Ctx) error {
	id, ok, err := h.idParam(c, "id")
	if !ok {
		return err
	}

	requests, err := h.controller.ListByEmployee(c.Context(), id)
	if err != nil {
		return h.fail(c, "getByEmployee", "failed to get time off", err)
	}

	return c.JSON(fiber.Map{"message": "success", "timeOff": requests})
}

func (h *TimeOffHandler) createTimeOff(c *fiber.Ctx) error {
	var request CreateTimeOffRequest
	if ok, err := h.parseBody(c, "createTimeOff", &request); !ok {
		return err
	}

	timeOff, err := h.controller.Create(c.Context(), request)
	if err != nil {
		return h.fail(c, "createTimeOff", "failed to create time off request", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "timeOff": timeOff})
}

func (h *TimeOffHandler) updateStatus(c *fiber.Ctx) error {
	id, ok, err := h.idParam(c, "id")
	if !ok {
		return err
	}

	var request UpdateStatusRequest
	if ok, err := h.parseBody(c, "updateStatus", &request); !ok {
		return err
	}

	timeOff, err := h.controller.UpdateStatus(c.Context(), id, request.Status)
	if err != nil {
		return h.fail(c, "updateStatus", "failed to update time off status", err)
	}

	return c.JSON(fiber.Map{"message": "success", "timeOff": timeOff})
}
