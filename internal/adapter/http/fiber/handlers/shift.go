package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/ports"
)

type ShiftHandler struct {
	shifts ports.ShiftService
	log    *zap.Logger
}

func NewShiftHandler(shifts ports.ShiftService, log *zap.Logger) *ShiftHandler {
	return &ShiftHandler{
		shifts: shifts,
		log:    log,
	}
}

type OpenShiftRequest struct {
	OpeningCash float64 `json:"opening_cash"`
}

func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	var req OpenShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	shift, err := h.shifts.OpenShift(c.Context(), req.OpeningCash)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(shift)
}

type CloseShiftRequest struct {
	ClosingCash float64 `json:"closing_cash"`
}

func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var req CloseShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	summary, err := h.shifts.CloseShift(c.Context(), req.ClosingCash)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	shift := h.shifts.CurrentShift()
	if shift == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No shift"})
	}
	return c.JSON(shift)
}

func (h *ShiftHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.shifts.Summary()
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *ShiftHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	shifts, err := h.shifts.History(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(shifts)
}
