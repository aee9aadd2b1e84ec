package handlers

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/internal/api/presenters"
	"EcoSync-Backend/internal/middleware"
	"EcoSync-Backend/pkg/pickup"
	"EcoSync-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetStats(c *fiber.Ctx) error
		ListPickups(c *fiber.Ctx) error
		UpdatePickupStatus(c *fiber.Ctx) error
		DeletePickup(c *fiber.Ctx) error

		ListUsers(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		UpdateUser(c *fiber.Ctx) error
		DeleteUser(c *fiber.Ctx) error
	}

	adminHandler struct {
		pickupService pickup.PickupService
		userService   user.UserService
		validator     *validator.Validate
	}
)

const adminUserPickups = 20

func NewAdminHandler(pickupService pickup.PickupService, userService user.UserService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		pickupService: pickupService,
		userService:   userService,
		validator:     validator,
	}
}

func (h *adminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.pickupService.GetAdminStats(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetPickupStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetPickupStats)
}

func (h *adminHandler) ListPickups(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 10)
	filter := domain.PickupFilter{
		Status:    c.Query("status"),
		WasteType: c.Query("waste_type"),
		Page:      page,
		Limit:     limit,
	}

	pickups, count, err := h.pickupService.ListAllPickups(c.UserContext(), filter, middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"pickups":    pickups,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *adminHandler) UpdatePickupStatus(c *fiber.Ctx) error {
	req := new(domain.AdminUpdatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePickup, err)
	}

	res, err := h.pickupService.AdminUpdateStatus(c.UserContext(), c.Params("id"), *req, middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedUpdatePickup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePickup)
}

func (h *adminHandler) DeletePickup(c *fiber.Ctx) error {
	if err := h.pickupService.DeletePickup(c.UserContext(), c.Params("id"), middleware.Actor(c)); err != nil {
		return presenters.Error(c, domain.MessageFailedDeletePickup, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePickup)
}

func (h *adminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := parsePagination(c, 10)
	filter := domain.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Page:   page,
		Limit:  limit,
	}

	users, count, err := h.userService.ListUsers(c.UserContext(), filter, middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"users":      users,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

// GetUser returns the account with its most recent pickups.
func (h *adminHandler) GetUser(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	u, err := h.userService.GetUser(c.UserContext(), c.Params("id"), actor)
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetUser, err)
	}

	pickups, _, err := h.pickupService.GetUserPickups(c.UserContext(), domain.PickupFilter{
		UserID: u.ID,
		Page:   1,
		Limit:  adminUserPickups,
	})
	if err != nil {
		return presenters.Error(c, domain.MessageFailedGetUser, err)
	}

	return presenters.SuccessResponse(c, domain.AdminUserDetail{
		User:    u,
		Pickups: pickups,
	}, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *adminHandler) UpdateUser(c *fiber.Ctx) error {
	req := new(domain.AdminUpdateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAdminEdit, err)
	}

	res, err := h.userService.AdminUpdateUser(c.UserContext(), c.Params("id"), *req, middleware.Actor(c))
	if err != nil {
		return presenters.Error(c, domain.MessageFailedAdminEdit, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAdminEdit)
}

func (h *adminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.UserContext(), c.Params("id"), middleware.Actor(c)); err != nil {
		return presenters.Error(c, domain.MessageFailedDeleteUser, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteUser)
}
