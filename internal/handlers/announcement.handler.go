package handlers

import (
	"shiftwatch/internal/app"
	announcementController "shiftwatch/internal/controllers/announcements"
	. "shiftwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AnnouncementHandler struct {
	Handler
	controller *announcementController.AnnouncementController
}

func NewAnnouncementHandler(app app.App, router fiber.Router) *AnnouncementHandler {
	return &AnnouncementHandler{
		controller: app.AnnouncementController,
		Handler:    newHandler(app, router, "announcement_handler"),
	}
}

func (h *AnnouncementHandler) Register() {
	announcements := h.router.Group("/announcements")
	announcements.Get("/", h.getAnnouncements)
	announcements.Post("/", h.middleware.RequireAdmin, h.createAnnouncement)
	announcements.Put("/", h.middleware.RequireAdmin, h.replaceAnnouncements)
	announcements.Delete("/:id", h.middleware.RequireAdmin, h.deleteAnnouncement)
}

func (h *AnnouncementHandler) getAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.controller.List(c.Context())
	if err != nil {
		return h.fail(c, "getAnnouncements", "failed to get announcements", err)
	}

	return c.JSON(fiber.Map{"message": "success", "announcements": announcements})
}

func (h *AnnouncementHandler) createAnnouncement(c *fiber.Ctx) error {
	var request AnnouncementRequest
	if ok, err := h.parseBody(c, "createAnnouncement", &request); !ok {
		return err
	}

	announcement, err := h.controller.Create(c.Context(), request)
	if err != nil {
		return h.fail(c, "createAnnouncement", "failed to create announcement", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "announcement": announcement})
}

func (h *AnnouncementHandler) replaceAnnouncements(c *fiber.Ctx) error {
	var request ReplaceAnnouncementsRequest
	if ok, err := h.parseBody(c, "replaceAnnouncements", &request); !ok {
		return err
	}

	announcements, err := h.controller.Replace(c.Context(), request.Announcements)
	if err != nil {
		return h.fail(c, "replaceAnnouncements", "failed to replace announcements", err)
	}

	return c.JSON(fiber.Map{"message": "success", "announcements": announcements})
}

func (h *AnnouncementHandler) deleteAnnouncement(c *fiber.Ctx) error {
	id, ok, err := h.idParam(c, "id")
	if !ok {
		return err
	}

	if err := h.controller.Delete(c.Context(), id); err != nil {
		return h.fail(c, "deleteAnnouncement", "failed to delete announcement", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
