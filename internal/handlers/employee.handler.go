package handlers

import (
	"shiftwatch/internal/app"
	employeeController "shiftwatch/internal/controllers/employees"
	. "shiftwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	Handler
	controller *employeeController.EmployeeController
}

func NewEmployeeHandler(app app.App, router fiber.Router) *EmployeeHandler {
	return &EmployeeHandler{
		controller: app.EmployeeController,
		Handler:    newHandler(app, router, "employee_handler"),
	}
}

func (h *EmployeeHandler) Register() {
	h.router.Get("/departments", h.getDepartments)
	h.router.Get("/positions", h.getPositions)
	h.router.Get("/schedules", h.getSchedules)

	employees := h.router.Group("/employees")
	employees.Get("/", h.getEmployees)
	employees.Get("/available", h.getAvailable)
	employees.Put("/:id/schedule/:day", h.middleware.RequireAdmin, h.updateScheduleDay)

	tasks := h.router.Group("/tasks")
	tasks.Get("/", h.getTasks)
	tasks.Post("/", h.middleware.RequireAdmin, h.createTask)
	tasks.Delete("/:id", h.middleware.RequireAdmin, h.deleteTask)
}

func (h *EmployeeHandler) getDepartments(c *fiber.Ctx) error {
	departments, err := h.controller.Departments(c.Context())
	if err != nil {
		return h.fail(c, "getDepartments", "failed to get departments", err)
	}

	return c.JSON(fiber.Map{"message": "success", "departments": departments})
}

func (h *EmployeeHandler) getPositions(c *fiber.Ctx) error {
	positions, err := h.controller.Positions(c.Context())
	if err != nil {
		return h.fail(c, "getPositions", "failed to get positions", err)
	}

	return c.JSON(fiber.Map{"message": "success", "positions": positions})
}

func (h *EmployeeHandler) getSchedules(c *fiber.Ctx) error {
	schedules, err := h.controller.Schedules(c.Context(), c.Query("department"))
	if err != nil {
		return h.fail(c, "getSchedules", "failed to get schedules", err)
	}

	return c.JSON(fiber.Map{"message": "success", "schedules": schedules})
}

func (h *EmployeeHandler) getEmployees(c *fiber.Ctx) error {
	employees, err := h.controller.List(c.Context(), c.Query("department"), c.Query("position"))
	if err != nil {
		return h.fail(c, "getEmployees", "failed to get employees", err)
	}

	return c.JSON(fiber.Map{"message": "success", "employees": employees})
}

func (h *EmployeeHandler) getAvailable(c *fiber.Ctx) error {
	employees, err := h.controller.Available(
		c.Context(),
		c.Query("day"),
		c.Query("start_time"),
		c.Query("end_time"),
		c.Query("position"),
	)
	if err != nil {
		return h.fail(c, "getAvailable", "failed to get available employees", err)
	}

	return c.JSON(fiber.Map{"message": "success", "employees": employees})
}

func (h *EmployeeHandler) updateScheduleDay(c *fiber.Ctx) error {
	id, ok, err := h.idParam(c, "id")
	if !ok {
		return err
	}

	var request UpdateScheduleDayRequest
	if ok, err := h.parseBody(c, "updateScheduleDay", &request); !ok {
		return err
	}

	schedule, err := h.controller.UpdateScheduleDay(c.Context(), id, c.Params("day"), request.ShiftTime)
	if err != nil {
		return h.fail(c, "updateScheduleDay", "failed to update schedule", err)
	}

	return c.JSON(fiber.Map{"message": "success", "schedule": schedule})
}

func (h *EmployeeHandler) getTasks(c *fiber.Ctx) error {
	tasks, err := h.controller.Tasks(c.Context())
	if err != nil {
		return h.fail(c, "getTasks", "failed to get tasks", err)
	}

	return c.JSON(fiber.Map{"message": "success", "tasks": tasks})
}

func (h *EmployeeHandler) createTask(c *fiber.Ctx) error {
	var request CreateTaskRequest
	if ok, err := h.parseBody(c, "createTask", &request); !ok {
		return err
	}

	task, err := h.controller.CreateTask(c.Context(), request)
	if err != nil {
		return h.fail(c, "createTask", "failed to create task", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "task": task})
}

func (h *EmployeeHandler) deleteTask(c *fiber.Ctx) error {
	id, ok, err := h.idParam(c, "id")
	if !ok {
		return err
	}

	if err := h.controller.DeleteTask(c.Context(), id); err != nil {
		return h.fail(c, "deleteTask", "failed to delete task", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
