package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/dto"
	"github.com/pawtrack/pawtrack-backend/internal/services"
	"gorm.io/gorm"
)

type SubscriptionHandler struct {
	service *services.SubscriptionService
}

func NewSubscriptionHandler(service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) StartTrial(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.StartTrialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.DeviceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "device_id is required",
		})
	}

	sub, err := h.service.StartTrial(userID, req.DeviceID)
	if err != nil {
		if code := trialConflictCode(err); code != "" {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(), Code: code,
			})
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent trial attempts race to the registry unique indexes.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "trial already registered", Code: "DEVICE_TRIAL_USED",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to start trial",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubscriptionResponse{
		Provider:  sub.Provider,
		Tier:      sub.Tier,
		Status:    sub.Status,
		ExpiresAt: sub.ExpiresAt,
	})
}

func (h *SubscriptionHandler) Status(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	resp, err := h.service.Status(userID, c.Query("device_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch subscription status",
		})
	}

	return c.JSON(resp)
}

func trialConflictCode(err error) string {
	switch {
	case errors.Is(err, services.ErrSubscriptionExists):
		return "SUBSCRIPTION_EXISTS"
	case errors.Is(err, services.ErrDeviceTrialUsed):
		return "DEVICE_TRIAL_USED"
	case errors.Is(err, services.ErrUserTrialUsed):
		return "USER_TRIAL_USED"
	default:
		return ""
	}
}
