package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jacksleight/simple-commerce/internal/cart"
	"github.com/jacksleight/simple-commerce/internal/checkout"
	"github.com/jacksleight/simple-commerce/internal/events"
	"github.com/jacksleight/simple-commerce/internal/gateway"
	h "github.com/jacksleight/simple-commerce/internal/http"
	"github.com/jacksleight/simple-commerce/internal/inventory"
	"github.com/jacksleight/simple-commerce/internal/metrics"
	"github.com/jacksleight/simple-commerce/internal/repository"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	KafkaBrokers    string
	ReceiptTopic    string
	Postgres        repository.PostgresCredentials
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	CustomerFields []string
	OrderFields    []string
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "simple_commerce"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
		ReceiptTopic:  getEnv("RECEIPT_TOPIC", "checkout-receipts"),
		Postgres: repository.PostgresCredentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "simple_commerce"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CustomerFields:  strings.Split(getEnv("CUSTOMER_FIELDS", "name,first_name,last_name,email"), ","),
		OrderFields:     strings.Split(getEnv("ORDER_FIELDS", "shipping_note,gift_note,delivery_instructions"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}

	coupons, err := repository.NewPostgresCouponRepository(&cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer coupons.Close()

	if err := coupons.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	orders := repository.NewMongoOrderRepository(mongoDB)
	customers := repository.NewMongoCustomerRepository(mongoDB)
	products := repository.NewMongoProductRepository(mongoDB)
	carts := cart.NewRedisProvider(redisClient)
	ledger := inventory.NewLedger()

	gateways := gateway.NewRegistry(
		gateway.WithBreaker(gateway.NewDummyGateway()),
	)

	dispatcher := events.NewDispatcher()
	dispatcher.OnPostCheckout(inventory.DeductOnCheckout(ledger))
	if cfg.KafkaBrokers != "" {
		publisher := events.NewReceiptPublisher(cfg.ReceiptTopic, strings.Split(cfg.KafkaBrokers, ",")...)
		defer publisher.Close()
		dispatcher.OnPostCheckout(publisher.HandlePostCheckout)
	}

	checkoutService := checkout.NewService(
		checkout.Config{
			CustomerFields: cfg.CustomerFields,
			OrderFields:    cfg.OrderFields,
		},
		orders,
		customers,
		coupons,
		products,
		carts,
		gateways,
		ledger,
		dispatcher,
		metrics.NewCheckoutMetrics(),
	)

	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", checkoutHandler.Checkout)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "simple-commerce"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("simple-commerce starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
}
