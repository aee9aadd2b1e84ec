package handlers

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/internal/api/presenters"
	"EcoSync-Backend/internal/middleware"
	"EcoSync-Backend/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		ListNotifications(c *fiber.Ctx) error
		MarkAsRead(c *fiber.Ctx) error
		MarkAllAsRead(c *fiber.Ctx) error
		DeleteNotification(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
	}
}

func (h *notificationHandler) ListNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", domain.DefaultNotificationLimit)

	res, err := h.notificationService.ListNotifications(c.UserContext(), middleware.Actor(c).UserID, limit)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkAsRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAsRead(c.UserContext(), c.Params("id"), middleware.Actor(c).UserID); err != nil {
		return presenters.Error(c, domain.MessageFailedReadNotification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessReadNotification)
}

func (h *notificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllAsRead(c.UserContext(), middleware.Actor(c).UserID); err != nil {
		return presenters.Error(c, domain.MessageFailedReadAll, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessReadAll)
}

func (h *notificationHandler) DeleteNotification(c *fiber.Ctx) error {
	if err := h.notificationService.DeleteNotification(c.UserContext(), c.Params("id"), middleware.Actor(c).UserID); err != nil {
		return presenters.Error(c, domain.MessageFailedDeleteNotification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteNotification)
}
