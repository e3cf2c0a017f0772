package budget

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pawtrack/pawtrack-backend/internal/auth"
	"github.com/pawtrack/pawtrack-backend/internal/dto"
	"github.com/pawtrack/pawtrack-backend/internal/modules/pets"
)

type BudgetHandler struct {
	service *BudgetService
}

func NewBudgetHandler(service *BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

func (h *BudgetHandler) CreateExpense(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	expense, err := h.service.CreateExpense(userID, req)
	if err != nil {
		if isValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return budgetError(c, err, "Failed to create expense")
	}

	return c.Status(fiber.StatusCreated).JSON(expense)
}

func (h *BudgetHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	expenses, total, err := h.service.ListExpenses(userID, c.Query("category"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch expenses",
		})
	}

	return c.JSON(ExpenseListResponse{
		Expenses: expenses,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *BudgetHandler) GetExpense(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid expense ID",
		})
	}

	expense, err := h.service.GetExpense(userID, expenseID)
	if err != nil {
		return budgetError(c, err, "Failed to fetch expense")
	}

	return c.JSON(expense)
}

func (h *BudgetHandler) UpdateExpense(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid expense ID",
		})
	}

	var req UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	expense, err := h.service.UpdateExpense(userID, expenseID, req)
	if err != nil {
		if isValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return budgetError(c, err, "Failed to update expense")
	}

	return c.JSON(expense)
}

func (h *BudgetHandler) DeleteExpense(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid expense ID",
		})
	}

	if err := h.service.DeleteExpense(userID, expenseID); err != nil {
		return budgetError(c, err, "Failed to delete expense")
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}

func (h *BudgetHandler) SetBudget(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req SetBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	b, err := h.service.SetBudget(userID, req)
	if err != nil {
		if isValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to set budget",
		})
	}

	return c.JSON(b)
}

func (h *BudgetHandler) GetBudget(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	b, err := h.service.GetBudget(userID)
	if err != nil {
		return budgetError(c, err, "Failed to fetch budget")
	}

	return c.JSON(b)
}

func (h *BudgetHandler) GetBudgetStatus(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	status, err := h.service.GetBudgetStatus(userID, time.Now())
	if err != nil {
		return budgetError(c, err, "Failed to compute budget status")
	}

	return c.JSON(status)
}

func isValidationErr(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidThreshold)
}

func budgetError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, ErrExpenseNotFound) || errors.Is(err, ErrBudgetNotFound) || errors.Is(err, pets.ErrPetNotFound) {
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
