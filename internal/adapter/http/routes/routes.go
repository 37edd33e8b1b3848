package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	_ "order_management/docs"
	"order_management/internal/adapter/cache"
	"order_management/internal/adapter/http/handlers"
	"order_management/internal/adapter/http/middleware"
	"order_management/internal/adapter/persistence/repository"
	"order_management/internal/infrastructure/config"
	"order_management/internal/infrastructure/database"
	"order_management/internal/logging"
	"order_management/internal/usecase"
	"order_management/internal/usecase/interfaces"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups the resource handlers mounted under /v1.
type Handlers struct {
	Orders    *handlers.OrderHandler
	Payments  *handlers.PaymentHandler
	Products  *handlers.ProductHandler
	Customers *handlers.CustomerHandler
}

// Run will start the server and block until SIGINT/SIGTERM.
func Run(cfg config.Config) {
	ctx := context.Background()

	router, cleanup, err := Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http] listening addr=%s", cfg.App.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Printf("[http] shutting down signal=%s", sig)
	case err := <-errCh:
		log.Printf("[http] server failed err=%v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown incomplete err=%v", err)
	}
}

// Build wires storage, use cases and handlers. The returned cleanup closes what Build opened.
func Build(ctx context.Context, cfg config.Config) (*gin.Engine, func(), error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("dynamodb: %w", err)
	}
	if cfg.App.EnsureTables {
		if err := database.EnsureTables(ctx, ddb, cfg); err != nil {
			return nil, nil, fmt.Errorf("ensure tables: %w", err)
		}
	}

	customerRepo := repository.NewCustomerDynamoRepository(ddb, cfg.DynamoDB.CustomersTable)
	productRepo := repository.NewProductDynamoRepository(ddb, cfg.DynamoDB.ProductsTable)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.DynamoDB.OrdersTable)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable, cfg.DynamoDB.OrdersTable)

	customerUseCase := usecase.NewCustomerUseCase(customerRepo)
	productUseCase := usecase.NewProductUseCase(productRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, customerRepo, productRepo, paymentRepo, cfg.Ledger.MaxAttempts)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, cfg.Ledger.MaxAttempts)

	if cfg.App.SeedDemoData {
		if err := database.NewSeeder(customerRepo, productRepo, orderUseCase).Seed(ctx); err != nil {
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}

	cleanup := func() {}
	var idempotency interfaces.IIdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("[http] redis unavailable, Idempotency-Key disabled addr=%s err=%v", cfg.Redis.Addr, err)
		} else {
			idempotency = cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
			cleanup = func() { _ = rdb.Close() }
		}
	}

	h := Handlers{
		Orders:    handlers.NewOrderHandler(orderUseCase),
		Payments:  handlers.NewPaymentHandler(paymentUseCase),
		Products:  handlers.NewProductHandler(productUseCase),
		Customers: handlers.NewCustomerHandler(customerUseCase),
	}
	return NewRouter(h, idempotency, cfg.HTTP.RequestTimeout), cleanup, nil
}

// NewRouter mounts middlewares, operational endpoints and the /v1 API. idempotency may be nil.
func NewRouter(h Handlers, idempotency interfaces.IIdempotencyStore, requestTimeout time.Duration) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, requestTimeout)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addProductRoutes(v1, h.Products)
	addCustomerRoutes(v1, h.Customers)
	addOrderRoutes(v1, h.Orders, h.Payments, idempotency)
	addPaymentRoutes(v1, h.Payments, idempotency)

	return router
}

func setMiddlewares(router *gin.Engine, requestTimeout time.Duration) {
	router.Use(middleware.Logging(logging.Base()))
	router.Use(middleware.MetricsMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.From(c).Error("recovered from panic", "panic", fmt.Sprint(recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.RequestTimeout(requestTimeout))
}
