package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/hlewluv/Food-Delivery-App-sub000/docs"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/handlers"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/middleware"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cache"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cartsync"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/events"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/health"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/metrics"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	repository "github.com/hlewluv/Food-Delivery-App-sub000/internal/repositories"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/routing"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/telemetry"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/tracking"
	"github.com/hlewluv/Food-Delivery-App-sub000/pkg/sendgrid"
	"github.com/hlewluv/Food-Delivery-App-sub000/pkg/stripe"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

// @title						Food Delivery API
// @version					1.0
// @description				Per-restaurant carts, checkout with payments, order tracking and the courier delivery flow.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cacheStore := cache.NewRedisCache(redisClient, &cfg.Cache)
	pendingCarts := repository.NewPendingCartRepo(redisClient)
	rateLimiter := repository.NewRateLimiter(redisClient, cfg.RateConfig)

	// Remote services
	cartSyncClient := cartsync.NewClient(cfg.CartSync)
	cartSyncProbe := cartsync.NewProbe(cfg.CartSync)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	publisher := events.NewKafkaPublisher(cfg.Kafka)

	// Services
	tracker := tracking.NewManager(repos.Order, cacheStore, tracking.TickerSource(cfg.Tracking.StepInterval))
	cartService := service.NewCartService(cacheStore, pendingCarts, cartSyncClient, cartSyncProbe, cfg.Cache.DefaultTTL)
	paymentService := service.NewPaymentService(stripeClient, repos.Order, tracker, cfg.Stripe)
	notificationService := service.NewNotificationService(sendGridClient)
	orderService := service.NewOrderService(service.OrderServiceDeps{
		Carts:       cartService,
		OrderRepo:   repos.Order,
		Pending:     pendingCarts,
		Prober:      cartSyncProbe,
		Payments:    paymentService,
		Notifier:    notificationService,
		Publisher:   publisher,
		Tracker:     tracker,
		ShippingFee: decimal.NewFromInt(cfg.Checkout.DefaultShippingFee),
	})
	deliveryService := service.NewDeliveryService(routing.NewHTTPProvider(cfg.Routing), models.TravelMode(cfg.Routing.Mode))
	offerConsumer := events.NewKafkaConsumer(cfg.Kafka, deliveryService.HandleOffer)

	// Handlers
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	courierHandler := handlers.NewCourierHandler(deliveryService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{CartSync: cartSyncProbe}, version)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	courier := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireRole(h, models.RoleBiker))
	}

	limited := func(scope string, h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RateLimit(rateLimiter, scope, h))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/carts/restaurants/{restaurantId}", authMiddleware.Authenticate(cartHandler.GetRestaurantCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/v1/carts/pending/{restaurantId}", authMiddleware.Authenticate(cartHandler.GetPendingUpdates()))
	routerMux.HandleFunc("DELETE /api/v1/carts/pending/{restaurantId}", authMiddleware.Authenticate(cartHandler.ClearPendingUpdates()))
	routerMux.HandleFunc("POST /api/v1/orders/checkout", limited("checkout", orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.GetOrderStatus()))
	routerMux.HandleFunc("POST /api/v1/payments", limited("payments", paymentHandler.CreatePayment()))
	routerMux.HandleFunc("GET /api/v1/payments/qr", authMiddleware.Authenticate(paymentHandler.PaymentQRCode()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())
	routerMux.HandleFunc("POST /api/v1/couriers/connection", courier(courierHandler.SetConnection()))
	routerMux.HandleFunc("PUT /api/v1/couriers/location", courier(courierHandler.UpdateLocation()))
	routerMux.HandleFunc("GET /api/v1/couriers/delivery", courier(courierHandler.GetDelivery()))
	routerMux.HandleFunc("POST /api/v1/couriers/delivery/{action}", courier(courierHandler.Act()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining, metrics sits next to the mux so it sees the matched pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	}).Handler(handler)
	handler = otelhttp.NewHandler(handler, "food-delivery")

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		slog.Info("📦 Listening for delivery offers", slog.String("topic", cfg.Kafka.OffersTopic))
		return offerConsumer.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Server shut down gracefully. All connections closed.")
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		slog.Error("❌ Service stopped with an error", slog.String("error", err.Error()))
	}

	// Drain background work before closing what it writes to
	cartService.Wait()
	deliveryService.Wait()
	tracker.Shutdown()

	if err := offerConsumer.Close(); err != nil {
		slog.Error("⚠️ Error closing offer consumer", slog.String("error", err.Error()))
	}

	if err := publisher.Close(); err != nil {
		slog.Error("⚠️ Error closing event publisher", slog.String("error", err.Error()))
	}

	if err := cacheStore.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}

	if err := repos.Close(); err != nil {
		slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Database connection closed")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownTracing(flushCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
