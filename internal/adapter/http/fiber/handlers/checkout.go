package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

type CheckoutHandler struct {
	checkout ports.CheckoutService
	log      *zap.Logger
}

func NewCheckoutHandler(checkout ports.CheckoutService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

type CommitRequest struct {
	PaymentMethod string `json:"payment_method"`
}

var validMethods = map[domain.PaymentMethod]bool{
	domain.PaymentMethodCash:    true,
	domain.PaymentMethodCard:    true,
	domain.PaymentMethodDigital: true,
	domain.PaymentMethodQRIS:    true,
}

func (h *CheckoutHandler) Commit(c *fiber.Ctx) error {
	var req CommitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !validMethods[method] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown payment method"})
	}

	tx, err := h.checkout.Commit(c.Context(), method)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	return c.JSON(h.checkout.History())
}
