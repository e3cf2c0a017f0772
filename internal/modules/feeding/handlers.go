package feeding

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/dto"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
)

type ScheduleHandler struct {
	service *ScheduleService
}

func NewScheduleHandler(service *ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	petID, err := uuid.Parse(c.Params("petId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pet ID",
		})
	}

	var req CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	schedule, err := h.service.Create(userID, petID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidTime) || errors.Is(err, ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return scheduleError(c, err, "Failed to create feeding schedule")
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (h *ScheduleHandler) ListByPet(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	petID, err := uuid.Parse(c.Params("petId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pet ID",
		})
	}

	schedules, total, err := h.service.ListByPet(userID, petID)
	if err != nil {
		return scheduleError(c, err, "Failed to fetch feeding schedules")
	}

	return c.JSON(ScheduleListResponse{Schedules: schedules, Total: total})
}

func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid schedule ID",
		})
	}

	schedule, err := h.service.Get(userID, scheduleID)
	if err != nil {
		return scheduleError(c, err, "Failed to fetch feeding schedule")
	}

	return c.JSON(schedule)
}

func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid schedule ID",
		})
	}

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	schedule, err := h.service.Update(userID, scheduleID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidTime) || errors.Is(err, ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return scheduleError(c, err, "Failed to update feeding schedule")
	}

	return c.JSON(schedule)
}

func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid schedule ID",
		})
	}

	if err := h.service.Delete(userID, scheduleID); err != nil {
		return scheduleError(c, err, "Failed to delete feeding schedule")
	}

	return c.JSON(fiber.Map{"message": "Feeding schedule deleted successfully"})
}

func scheduleError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, ErrScheduleNotFound) || errors.Is(err, pets.ErrPetNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if errors.Is(err, ErrNotOwner) || errors.Is(err, pets.ErrNotOwner) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
