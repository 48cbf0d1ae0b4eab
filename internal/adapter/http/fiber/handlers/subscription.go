package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

type SubscriptionHandler struct {
	gate ports.SubscriptionService
	log  *zap.Logger
}

func NewSubscriptionHandler(gate ports.SubscriptionService, log *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		gate: gate,
		log:  log,
	}
}

func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"plan":            h.gate.CurrentPlan(),
		"features":        h.gate.Features(),
		"used_this_month": h.gate.UsedThisMonth(),
		"remaining":       h.gate.Remaining(),
		"can_transact":    h.gate.CanTransact(),
	})
}

type SetPlanRequest struct {
	Plan string `json:"plan"`
}

var validPlans = map[domain.SubscriptionPlan]bool{
	domain.PlanFree:    true,
	domain.PlanBasic:   true,
	domain.PlanPro:     true,
	domain.PlanAdvance: true,
}

func (h *SubscriptionHandler) SetPlan(c *fiber.Ctx) error {
	var req SetPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	plan := domain.SubscriptionPlan(req.Plan)
	if !validPlans[plan] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown plan"})
	}

	h.gate.SetPlan(plan)
	h.log.Info("subscription plan changed", zap.String("plan", req.Plan))
	return h.Get(c)
}

// ResetUsage starts a fresh monthly window. Normally driven by a billing
// cron, exposed for the admin UI.
func (h *SubscriptionHandler) ResetUsage(c *fiber.Ctx) error {
	h.gate.ResetMonthlyCount()
	return h.Get(c)
}

func (h *SubscriptionHandler) HasFeature(c *fiber.Ctx) error {
	flag := domain.FeatureFlag(c.Params("flag"))
	return c.JSON(fiber.Map{
		"feature": flag,
		"enabled": h.gate.HasFeature(flag),
	})
}
