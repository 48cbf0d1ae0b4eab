package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/ports"
)

type PaymentHandler struct {
	sessions ports.PaymentSessionService
	cart     ports.CartService
	log      *zap.Logger
}

func NewPaymentHandler(sessions ports.PaymentSessionService, cart ports.CartService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		sessions: sessions,
		cart:     cart,
		log:      log,
	}
}

type StartSessionRequest struct {
	// Amount to collect. Zero means "charge the current cart subtotal".
	Amount float64 `json:"amount"`
}

func (h *PaymentHandler) Start(c *fiber.Ctx) error {
	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	amount := req.Amount
	if amount == 0 {
		amount = h.cart.Subtotal()
	}

	session, err := h.sessions.Start(c.Context(), amount)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *PaymentHandler) CheckStatus(c *fiber.Ctx) error {
	session, err := h.sessions.CheckStatus(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(session)
}

func (h *PaymentHandler) ForceConfirm(c *fiber.Ctx) error {
	session, err := h.sessions.ForceConfirm(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(session)
}

func (h *PaymentHandler) Cancel(c *fiber.Ctx) error {
	if err := h.sessions.Cancel(c.Context()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PaymentHandler) Current(c *fiber.Ctx) error {
	session := h.sessions.Current()
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No payment session"})
	}
	return c.JSON(fiber.Map{
		"session":           session,
		"seconds_remaining": h.sessions.SecondsRemaining(),
	})
}
