package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/quickpos/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/quickpos/internal/adapter/queue"
	"github.com/seu-repo/quickpos/internal/adapter/storage/memory"
	"github.com/seu-repo/quickpos/internal/adapter/system"
	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/ports"
	"github.com/seu-repo/quickpos/internal/service/cart"
	"github.com/seu-repo/quickpos/internal/service/catalog"
	"github.com/seu-repo/quickpos/internal/service/checkout"
	"github.com/seu-repo/quickpos/internal/service/expense"
	"github.com/seu-repo/quickpos/internal/service/health"
	"github.com/seu-repo/quickpos/internal/service/shift"
	"github.com/seu-repo/quickpos/internal/service/subscription"
)

// setupTestApp wires the full HTTP surface against in-memory storage, the
// same way cmd/server does when no database is configured.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	clock := system.Clock{}
	ids := system.UUIDGenerator{}
	mq := queue.NewNoopQueue()

	shiftRepo := memory.NewShiftRepository()
	txRepo := memory.NewTransactionRepository()
	expenseRepo := memory.NewExpenseRepository()

	cartService := cart.NewService(logger)
	gate := subscription.NewService(domain.PlanFree, logger)
	shiftService := shift.NewService(shiftRepo, mq, clock, ids, logger)
	expenseService := expense.NewService(expenseRepo, clock, ids, logger)
	catalogService := catalog.NewStaticCatalog([]ports.CatalogProduct{
		{ID: "kopi-susu", Name: "Kopi Susu", UnitPrice: 25000},
		{ID: "es-teh", Name: "Es Teh", UnitPrice: 5000},
	}, logger)
	checkoutService := checkout.NewService(
		cartService, gate, shiftService, checkout.DefaultPricing(),
		txRepo, mq, clock, ids, logger,
		checkout.Options{RequireOpenShift: true},
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	v1 := app.Group("/api/v1")

	cartHandler := handlers.NewCartHandler(cartService, catalogService, logger)
	v1.Get("/cart", cartHandler.Get)
	v1.Post("/cart/items", cartHandler.AddItem)
	v1.Patch("/cart/items/:productId", cartHandler.SetQuantity)
	v1.Delete("/cart/items/:productId", cartHandler.RemoveItem)
	v1.Delete("/cart", cartHandler.Clear)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	v1.Post("/checkout", checkoutHandler.Commit)
	v1.Get("/transactions", checkoutHandler.History)

	shiftHandler := handlers.NewShiftHandler(shiftService, logger)
	v1.Post("/shifts/open", shiftHandler.Open)
	v1.Post("/shifts/close", shiftHandler.Close)
	v1.Get("/shifts/current", shiftHandler.Current)
	v1.Get("/shifts/current/summary", shiftHandler.Summary)
	v1.Get("/shifts", shiftHandler.History)

	subHandler := handlers.NewSubscriptionHandler(gate, logger)
	v1.Get("/subscription", subHandler.Get)
	v1.Put("/subscription", subHandler.SetPlan)

	expenseHandler := handlers.NewExpenseHandler(expenseService, logger)
	v1.Post("/expenses", expenseHandler.Add)
	v1.Delete("/expenses/:id", expenseHandler.Remove)
	v1.Get("/expenses/today", expenseHandler.Today)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// TestAPI_HealthEndpoints tests the liveness and readiness probes
func TestAPI_HealthEndpoints(t *testing.T) {
	logger := zap.NewNop()
	app := fiber.New()

	service := health.NewService(&health.Config{Version: "test"}, logger)
	health.NewFiberHandler(service).RegisterRoutes(app)

	t.Run("Health", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/health", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var result map[string]interface{}
		decodeBody(t, resp, &result)
		if result["status"] != "healthy" {
			t.Errorf("Expected status 'healthy', got '%v'", result["status"])
		}
	})

	t.Run("ReadyWithoutBackends", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/ready", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var result map[string]interface{}
		decodeBody(t, resp, &result)
		if result["ready"] != true {
			t.Errorf("Expected ready=true, got %v", result["ready"])
		}
	})
}

// TestAPI_SaleFlow walks a full register session over HTTP: open the shift,
// build a cart, check out, then close
func TestAPI_SaleFlow(t *testing.T) {
	app := setupTestApp(t)

	t.Run("OpenShift", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/shifts/open", map[string]interface{}{
			"opening_cash": 100000,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}

		var shift domain.Shift
		decodeBody(t, resp, &shift)
		if !shift.IsOpen {
			t.Error("Expected shift to be open")
		}
	})

	t.Run("BuildCart", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
			"product_id": "kopi-susu",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()

		// Same product again merges into one line with quantity 2.
		resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
			"product_id": "kopi-susu",
		})

		var snapshot domain.CartSnapshot
		decodeBody(t, resp, &snapshot)
		if len(snapshot.Items) != 1 {
			t.Fatalf("Expected 1 line, got %d", len(snapshot.Items))
		}
		if snapshot.Items[0].Quantity != 2 {
			t.Errorf("Expected quantity 2, got %d", snapshot.Items[0].Quantity)
		}
		if snapshot.Subtotal != 50000 {
			t.Errorf("Expected subtotal 50000, got %f", snapshot.Subtotal)
		}
	})

	t.Run("Checkout", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/checkout", map[string]interface{}{
			"payment_method": "cash",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}

		var tx domain.Transaction
		decodeBody(t, resp, &tx)
		if tx.Subtotal != 50000 {
			t.Errorf("Expected subtotal 50000, got %f", tx.Subtotal)
		}
		if tx.Discount != 5000 {
			t.Errorf("Expected discount 5000, got %f", tx.Discount)
		}
		if tx.Total != 45000 {
			t.Errorf("Expected total 45000, got %f", tx.Total)
		}
	})

	t.Run("CartClearedAfterCheckout", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/cart", nil)

		var snapshot domain.CartSnapshot
		decodeBody(t, resp, &snapshot)
		if len(snapshot.Items) != 0 {
			t.Errorf("Expected empty cart, got %d lines", len(snapshot.Items))
		}
	})

	t.Run("TransactionHistory", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/transactions", nil)

		var txs []domain.Transaction
		decodeBody(t, resp, &txs)
		if len(txs) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(txs))
		}
	})

	t.Run("ShiftSummary", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/shifts/current/summary", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var summary domain.ShiftSummary
		decodeBody(t, resp, &summary)
		if summary.TotalSales != 45000 {
			t.Errorf("Expected total sales 45000, got %f", summary.TotalSales)
		}
		if summary.TransactionCount != 1 {
			t.Errorf("Expected 1 transaction, got %d", summary.TransactionCount)
		}
	})

	t.Run("CloseShift", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/shifts/close", map[string]interface{}{
			"closing_cash": 145000,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var summary domain.ShiftSummary
		decodeBody(t, resp, &summary)
		if summary.CashVariance != 0 {
			t.Errorf("Expected zero variance, got %f", summary.CashVariance)
		}

		resp = doJSON(t, app, http.MethodGet, "/api/v1/shifts/current", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404 after close, got %d", resp.StatusCode)
		}
	})
}

// TestAPI_CheckoutGuards tests the rejection paths of the checkout endpoint
func TestAPI_CheckoutGuards(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		app := setupTestApp(t)
		doJSON(t, app, http.MethodPost, "/api/v1/shifts/open", map[string]interface{}{"opening_cash": 0})

		resp := doJSON(t, app, http.MethodPost, "/api/v1/checkout", map[string]interface{}{
			"payment_method": "cash",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("NoOpenShift", func(t *testing.T) {
		app := setupTestApp(t)
		doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
			"product_id": "es-teh",
		})

		resp := doJSON(t, app, http.MethodPost, "/api/v1/checkout", map[string]interface{}{
			"payment_method": "cash",
		})
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", resp.StatusCode)
		}
	})

	t.Run("UnknownPaymentMethod", func(t *testing.T) {
		app := setupTestApp(t)

		resp := doJSON(t, app, http.MethodPost, "/api/v1/checkout", map[string]interface{}{
			"payment_method": "barter",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		app := setupTestApp(t)

		resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
			"product_id": "nope",
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
	})
}

// TestAPI_Subscription tests plan inspection and switching
func TestAPI_Subscription(t *testing.T) {
	app := setupTestApp(t)

	t.Run("DefaultPlan", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/subscription", nil)

		var result map[string]interface{}
		decodeBody(t, resp, &result)
		if result["plan"] != "free" {
			t.Errorf("Expected plan 'free', got '%v'", result["plan"])
		}
		if result["can_transact"] != true {
			t.Errorf("Expected can_transact=true, got %v", result["can_transact"])
		}
	})

	t.Run("Upgrade", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/v1/subscription", map[string]interface{}{
			"plan": "pro",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var result map[string]interface{}
		decodeBody(t, resp, &result)
		if result["plan"] != "pro" {
			t.Errorf("Expected plan 'pro', got '%v'", result["plan"])
		}
	})

	t.Run("UnknownPlan", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/v1/subscription", map[string]interface{}{
			"plan": "platinum",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}

// TestAPI_Expenses tests the expense endpoints
func TestAPI_Expenses(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Add", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/expenses", map[string]interface{}{
			"description": "Beli gas",
			"amount":      25000,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}

		var exp domain.Expense
		decodeBody(t, resp, &exp)
		if exp.Amount != 25000 {
			t.Errorf("Expected amount 25000, got %f", exp.Amount)
		}
	})

	t.Run("RejectNonPositiveAmount", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/expenses", map[string]interface{}{
			"description": "Gratis",
			"amount":      0,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Today", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/expenses/today", nil)

		var result struct {
			Expenses []domain.Expense `json:"expenses"`
			Total    float64          `json:"total"`
		}
		decodeBody(t, resp, &result)
		if len(result.Expenses) != 1 {
			t.Fatalf("Expected 1 expense, got %d", len(result.Expenses))
		}
		if result.Total != 25000 {
			t.Errorf("Expected total 25000, got %f", result.Total)
		}
	})
}
