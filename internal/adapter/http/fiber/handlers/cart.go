package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
)

type CartHandler struct {
	cart    ports.CartService
	catalog ports.CatalogService
	log     *zap.Logger
}

func NewCartHandler(cart ports.CartService, catalog ports.CatalogService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		log:     log,
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Notes     string `json:"notes"`
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product_id is required"})
	}

	product, err := h.catalog.Lookup(c.Context(), req.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	h.cart.AddItem(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Notes:     req.Notes,
	})

	return c.JSON(h.cart.Snapshot())
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	h.cart.RemoveItem(c.Params("productId"))
	return c.JSON(h.cart.Snapshot())
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	h.cart.SetQuantity(c.Params("productId"), req.Quantity)
	return c.JSON(h.cart.Snapshot())
}

type AttachCustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *CartHandler) AttachCustomer(c *fiber.Ctx) error {
	var req AttachCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	h.cart.AttachCustomer(&domain.Customer{ID: req.ID, Name: req.Name, Phone: req.Phone})
	return c.JSON(h.cart.Snapshot())
}

func (h *CartHandler) DetachCustomer(c *fiber.Ctx) error {
	h.cart.AttachCustomer(nil)
	return c.JSON(h.cart.Snapshot())
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.cart.Snapshot())
}
