package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/adapter/cache"
	extpayment "github.com/seu-repo/quickpos/internal/adapter/external/payment"
	"github.com/seu-repo/quickpos/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/quickpos/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/quickpos/internal/adapter/queue"
	"github.com/seu-repo/quickpos/internal/adapter/storage/memory"
	"github.com/seu-repo/quickpos/internal/adapter/storage/postgres"
	"github.com/seu-repo/quickpos/internal/adapter/system"
	wsAdapter "github.com/seu-repo/quickpos/internal/adapter/websocket"
	"github.com/seu-repo/quickpos/internal/domain"
	"github.com/seu-repo/quickpos/internal/observability/telemetry"
	"github.com/seu-repo/quickpos/internal/ports"
	"github.com/seu-repo/quickpos/internal/service/cart"
	"github.com/seu-repo/quickpos/internal/service/catalog"
	"github.com/seu-repo/quickpos/internal/service/checkout"
	"github.com/seu-repo/quickpos/internal/service/email"
	"github.com/seu-repo/quickpos/internal/service/expense"
	"github.com/seu-repo/quickpos/internal/service/health"
	"github.com/seu-repo/quickpos/internal/service/payment"
	"github.com/seu-repo/quickpos/internal/service/shift"
	"github.com/seu-repo/quickpos/internal/service/subscription"
	"github.com/seu-repo/quickpos/pkg/config"
)

const (
	serviceName    = "quickpos"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting QuickPOS",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize Storage. Without a database URL the register runs on
	// in-memory repositories, matching a standalone single-till setup.
	var (
		shiftRepo   ports.ShiftRepository
		txRepo      ports.TransactionRepository
		expenseRepo ports.ExpenseRepository
		healthCfg   = &health.Config{Version: serviceVersion}
	)
	if cfg.Database.URL != "" {
		db, err := postgres.NewConnection(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer postgres.Close(db)

		if cfg.Database.AutoMigrate {
			if err := postgres.RunMigrations(db); err != nil {
				logger.Fatal("Failed to run migrations", zap.Error(err))
			}
		}

		shiftRepo = postgres.NewShiftRepository(db, logger)
		txRepo = postgres.NewTransactionRepository(db, logger)
		expenseRepo = postgres.NewExpenseRepository(db, logger)

		if sqlDB, err := db.DB(); err == nil {
			healthCfg.DB = sqlDB
		}
	} else {
		logger.Info("No database configured, using in-memory storage")
		shiftRepo = memory.NewShiftRepository()
		txRepo = memory.NewTransactionRepository()
		expenseRepo = memory.NewExpenseRepository()
	}

	// 5. Initialize Cache (Redis with local fallback)
	var store ports.Cache
	if cfg.Redis.URL != "" {
		store, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	} else {
		store = cache.NewLocalCache(time.Minute, logger)
	}
	defer store.Close()

	// 6. Initialize Message Queue
	var messageQueue queue.MessageQueue
	switch cfg.Queue.Driver {
	case "nats":
		messageQueue, err = queue.NewNATSQueue(cfg.Queue.NATSURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
	case "rabbitmq":
		messageQueue, err = queue.NewRabbitMQQueue(cfg.Queue.RabbitMQURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
	default:
		messageQueue = queue.NewNoopQueue()
	}
	defer messageQueue.Close()

	// 7. Initialize Services (Business Logic Layer)
	clock := system.Clock{}
	ids := system.UUIDGenerator{}

	cartService := cart.NewService(logger)
	gate := subscription.NewService(domain.SubscriptionPlan(cfg.Subscription.Plan), logger)
	shiftService := shift.NewService(shiftRepo, messageQueue, clock, ids, logger)
	expenseService := expense.NewService(expenseRepo, clock, ids, logger)

	products := make([]ports.CatalogProduct, 0, len(cfg.Catalog.Products))
	for _, p := range cfg.Catalog.Products {
		products = append(products, ports.CatalogProduct{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice})
	}
	catalogService := catalog.NewCachedCatalog(
		catalog.NewStaticCatalog(products, logger),
		store,
		cfg.Catalog.CacheTTL,
		logger,
	)

	pricing := checkout.StandardPricing{
		DiscountRate: cfg.Pricing.DiscountRate,
		TaxRate:      cfg.Pricing.TaxRate,
	}
	checkoutService := checkout.NewService(
		cartService, gate, shiftService, pricing, txRepo, messageQueue,
		clock, ids, logger,
		checkout.Options{RequireOpenShift: cfg.Checkout.RequireOpenShift},
	)

	// 8. Initialize Payment Session Manager
	var provider ports.PaymentProvider = extpayment.NewSimulator(
		cfg.Payment.SimulatorProbability, time.Now().UnixNano(), logger,
	)
	if cfg.CircuitBreaker.Enabled {
		provider = extpayment.NewBreakerProvider(provider, logger)
	}
	sessions := payment.NewManager(payment.Config{
		Expiry:      cfg.Payment.Expiry,
		PollLatency: cfg.Payment.PollLatency,
		Tick:        cfg.Payment.Tick,
	}, provider, clock, ids, logger)

	// 9. Initialize Email Service
	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
		StoreName:      cfg.Email.StoreName,
		StoreAddress:   cfg.Email.StoreAddress,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 10. Initialize WebSocket Hub (for real-time updates)
	wsHub := wsAdapter.NewHub(logger)
	go wsHub.Run()

	// 11. Wire the payment session to the rest of the register: every
	// state change reaches the UI, and a confirmed QRIS payment commits
	// the cart exactly once.
	sessions.OnState(func(s domain.PaymentSession) {
		wsHub.BroadcastEvent("payment.session", s)
	})
	sessions.OnConfirmed(func(s domain.PaymentSession) {
		if _, err := checkoutService.Commit(context.Background(), domain.PaymentMethodQRIS); err != nil {
			logger.Error("Failed to commit after payment confirmation",
				zap.String("session_id", s.ID),
				zap.Error(err),
			)
		}
	})

	// 12. Start Background Workers
	go startBackgroundWorkers(messageQueue, wsHub, emailService, gate, expenseService, cfg.Email.ReportTo, logger)

	// 13. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	if cfg.RateLimiting.Enabled {
		app.Use(middleware.RateLimit(cfg.RateLimiting))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	// Health Check Endpoints
	healthService := health.NewService(healthCfg, logger)
	healthService.RegisterChecker("cache", func(ctx context.Context) health.CheckResult {
		start := time.Now()
		result := health.CheckResult{Name: "cache", Timestamp: time.Now()}
		if err := store.Ping(); err != nil {
			result.Status = health.StatusUnhealthy
			result.Message = err.Error()
		} else {
			result.Status = health.StatusHealthy
			result.Message = "connection ok"
		}
		result.Duration = time.Since(start)
		return result
	})
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		path := cfg.Prometheus.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	protected := v1
	if cfg.JWT.Secret != "" {
		protected = v1.Group("", middleware.AuthRequired(cfg.JWT.Secret))
	} else {
		logger.Warn("JWT secret not set, API is unauthenticated")
	}

	// Cart routes
	cartHandler := handlers.NewCartHandler(cartService, catalogService, logger)
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Patch("/cart/items/:productId", cartHandler.SetQuantity)
	protected.Delete("/cart/items/:productId", cartHandler.RemoveItem)
	protected.Post("/cart/customer", cartHandler.AttachCustomer)
	protected.Delete("/cart/customer", cartHandler.DetachCustomer)
	protected.Delete("/cart", cartHandler.Clear)

	// Checkout and transaction routes
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, logger)
	protected.Post("/checkout", checkoutHandler.Commit)
	protected.Get("/transactions", checkoutHandler.History)

	receiptHandler := handlers.NewReceiptHandler(checkoutService, emailService, gate, logger)
	protected.Post("/transactions/:id/receipt", receiptHandler.Send)

	// Shift routes
	shiftHandler := handlers.NewShiftHandler(shiftService, logger)
	protected.Post("/shifts/open", shiftHandler.Open)
	protected.Post("/shifts/close", shiftHandler.Close)
	protected.Get("/shifts/current", shiftHandler.Current)
	protected.Get("/shifts/current/summary", shiftHandler.Summary)
	protected.Get("/shifts", shiftHandler.History)

	// Subscription routes
	subHandler := handlers.NewSubscriptionHandler(gate, logger)
	protected.Get("/subscription", subHandler.Get)
	protected.Put("/subscription", subHandler.SetPlan)
	protected.Post("/subscription/reset", subHandler.ResetUsage)
	protected.Get("/subscription/features/:flag", subHandler.HasFeature)

	// Payment session routes
	paymentHandler := handlers.NewPaymentHandler(sessions, cartService, logger)
	protected.Post("/payment/session", paymentHandler.Start)
	protected.Get("/payment/session", paymentHandler.Current)
	protected.Post("/payment/session/check", paymentHandler.CheckStatus)
	protected.Post("/payment/session/confirm", paymentHandler.ForceConfirm)
	protected.Delete("/payment/session", paymentHandler.Cancel)

	// Expense routes
	expenseHandler := handlers.NewExpenseHandler(expenseService, logger)
	protected.Post("/expenses", expenseHandler.Add)
	protected.Delete("/expenses/:id", expenseHandler.Remove)
	protected.Get("/expenses/today", expenseHandler.Today)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/updates", websocket.New(func(c *websocket.Conn) {
		terminal := c.Query("terminal", "register-1")
		wsHub.AddClient(c, terminal)
	}))

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers subscribes the async consumers: the websocket
// fan-out for recorded sales and shift events, and the end-of-day report
// mailer for plans that include it.
func startBackgroundWorkers(
	mq queue.MessageQueue,
	hub *wsAdapter.Hub,
	mailer *email.Service,
	gate ports.SubscriptionService,
	expenses ports.ExpenseService,
	reportTo string,
	logger *zap.Logger,
) {
	logger.Info("Starting background workers")

	mq.Subscribe("transaction.recorded", func(msg []byte) error {
		hub.BroadcastEvent("transaction.recorded", json.RawMessage(msg))
		return nil
	})

	mq.Subscribe("shift.opened", func(msg []byte) error {
		hub.BroadcastEvent("shift.opened", json.RawMessage(msg))
		return nil
	})

	mq.Subscribe("shift.closed", func(msg []byte) error {
		hub.BroadcastEvent("shift.closed", json.RawMessage(msg))

		if reportTo == "" || !gate.HasFeature(domain.FeatureDailyReport) {
			return nil
		}

		var summary domain.ShiftSummary
		if err := json.Unmarshal(msg, &summary); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, expenseTotal, err := expenses.Today(ctx)
		if err != nil {
			logger.Warn("Failed to total expenses for daily report", zap.Error(err))
		}

		return mailer.SendDailyReport(ctx, reportTo, &summary, expenseTotal)
	})
}
