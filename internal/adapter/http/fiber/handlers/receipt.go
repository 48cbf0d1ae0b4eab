package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

// ReceiptHandler mails receipts for recorded transactions. Gated on the
// receiptExport plan feature.
type ReceiptHandler struct {
	checkout ports.CheckoutService
	email    ports.EmailService
	gate     ports.SubscriptionService
	log      *zap.Logger
}

func NewReceiptHandler(checkout ports.CheckoutService, email ports.EmailService, gate ports.SubscriptionService, log *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		checkout: checkout,
		email:    email,
		gate:     gate,
		log:      log,
	}
}

type SendReceiptRequest struct {
	Email string `json:"email"`
}

func (h *ReceiptHandler) Send(c *fiber.Ctx) error {
	if !h.gate.HasFeature(domain.FeatureReceiptExport) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Plan does not include receipt export"})
	}

	var req SendReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email is required"})
	}

	id := c.Params("id")
	var tx *domain.Transaction
	for _, t := range h.checkout.History() {
		if t.ID == id {
			copied := t
			tx = &copied
			break
		}
	}
	if tx == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	if err := h.email.SendReceipt(c.Context(), req.Email, tx); err != nil {
		return err
	}

	h.log.Info("receipt sent",
		zap.String("transaction_id", id),
		zap.String("to", req.Email),
	)
	return c.SendStatus(fiber.StatusAccepted)
}
