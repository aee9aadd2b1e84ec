package handlers

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/internal/api/presenters"
	"EcoSync-Backend/internal/middleware"
	"EcoSync-Backend/pkg/pickup"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PickupHandler interface {
		GetUserPickups(c *fiber.Ctx) error
		GetUserStats(c *fiber.Ctx) error
		CreatePickup(c *fiber.Ctx) error
		GetPickupByID(c *fiber.Ctx) error
		UpdatePickup(c *fiber.Ctx) error
		CompletePickup(c *fiber.Ctx) error
		CancelPickup(c *fiber.Ctx) error
	}

	pickupHandler struct {
		pickupService pickup.PickupService
		validator     *validator.Validate
	}
)

func NewPickupHandler(pickupService pickup.PickupService, validator *validator.Validate) PickupHandler {
	return &pickupHandler{
		pickupService: pickupService,
		validator:     validator,
	}
}

func (h *pickupHandler) GetUserPickups(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 10)
	filter := domain.PickupFilter{
		UserID: middleware.Actor(c).UserID,
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	pickups, count, err := h.pickupService.GetUserPickups(c.UserContext(), filter)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"pickups":    pickups,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *pickupHandler) GetUserStats(c *fiber.Ctx) error {
	stats, err := h.pickupService.GetUserStats(c.UserContext(), middleware.Actor(c).UserID)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetPickupStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetPickupStats)
}

func (h *pickupHandler) CreatePickup(c *fiber.Ctx) error {
	req := new(domain.PickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// optional waste photo
	req.Image, _ = c.FormFile("image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePickup, err)
	}

	res, err := h.pickupService.CreatePickup(c.UserContext(), *req, middleware.Actor(c).UserID)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedCreatePickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePickup)
}

func (h *pickupHandler) GetPickupByID(c *fiber.Ctx) error {
	res, err := h.pickupService.GetPickupByID(c.UserContext(), c.Params("id"), middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *pickupHandler) UpdatePickup(c *fiber.Ctx) error {
	req := new(domain.UpdatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePickup, err)
	}

	res, err := h.pickupService.UpdatePickup(c.UserContext(), c.Params("id"), *req, middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedUpdatePickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePickup)
}

func (h *pickupHandler) CompletePickup(c *fiber.Ctx) error {
	req := new(domain.CompletePickupRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompletePickup, err)
	}

	res, err := h.pickupService.CompletePickup(c.UserContext(), c.Params("id"), *req, middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedCompletePickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCompletePickup)
}

func (h *pickupHandler) CancelPickup(c *fiber.Ctx) error {
	res, err := h.pickupService.CancelPickup(c.UserContext(), c.Params("id"), middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedCancelPickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCancelPickup)
}
