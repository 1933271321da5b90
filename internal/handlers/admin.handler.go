package handlers

import (
	"shiftwatch/internal/app"
	adminController "shiftwatch/internal/controllers/admin"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller *adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		controller: app.AdminController,
		Handler:    newHandler(app, router, "admin_handler"),
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin")
	admin.Post("/verify", h.verify)
}

type verifyRequest struct {
	Password string `json:"password"`
}

func (h *AdminHandler) verify(c *fiber.Ctx) error {
	var request verifyRequest
	if ok, err := h.parseBody(c, "verify", &request); !ok {
		return err
	}

	if !h.controller.Verify(request.Password) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid password", "valid": false})
	}

	return c.JSON(fiber.Map{"message": "success", "valid": true})
}
