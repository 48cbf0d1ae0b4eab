package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/ports"
)

type ExpenseHandler struct {
	expenses ports.ExpenseService
	log      *zap.Logger
}

func NewExpenseHandler(expenses ports.ExpenseService, log *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenses: expenses,
		log:      log,
	}
}

type AddExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func (h *ExpenseHandler) Add(c *fiber.Ctx) error {
	var req AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	exp, err := h.expenses.Add(c.Context(), req.Description, req.Amount)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

func (h *ExpenseHandler) Remove(c *fiber.Ctx) error {
	if err := h.expenses.Remove(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ExpenseHandler) Today(c *fiber.Ctx) error {
	expenses, total, err := h.expenses.Today(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"expenses": expenses,
		"total":    total,
	})
}
