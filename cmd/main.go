package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	dashboardapp "github.com/muhammadheryan/telecom-distribution/application/dashboard"
	notificationapp "github.com/muhammadheryan/telecom-distribution/application/notification"
	productapp "github.com/muhammadheryan/telecom-distribution/application/product"
	requestapp "github.com/muhammadheryan/telecom-distribution/application/request"
	stockapp "github.com/muhammadheryan/telecom-distribution/application/stock"
	userapp "github.com/muhammadheryan/telecom-distribution/application/user"
	"github.com/muhammadheryan/telecom-distribution/cmd/config"
	redisclient "github.com/muhammadheryan/telecom-distribution/cmd/redis"
	_ "github.com/muhammadheryan/telecom-distribution/docs"
	productRepo "github.com/muhammadheryan/telecom-distribution/repository/product"
	redisRepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	requestRepo "github.com/muhammadheryan/telecom-distribution/repository/request"
	stockRepo "github.com/muhammadheryan/telecom-distribution/repository/stock"
	txRepo "github.com/muhammadheryan/telecom-distribution/repository/tx"
	userRepo "github.com/muhammadheryan/telecom-distribution/repository/user"
	"github.com/muhammadheryan/telecom-distribution/thirdparty/rabbitmq"
	"github.com/muhammadheryan/telecom-distribution/transport"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"go.uber.org/zap"
)

// @title TELECOM DISTRIBUTION API
// @version 1.0
// @description Product request lifecycle and role dashboards for distributors, agents and retailers
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	m := metrics.New("telecom-distribution")

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	RequestRepo := requestRepo.NewRequestRepository(db)
	StockRepo := stockRepo.NewStockRepository(db)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Event publishing is optional; without a broker the service runs without notifications
	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL())
		if err != nil {
			logger.Warn("err connect rabbitmq publisher, events disabled", zap.Error(err))
		} else {
			publisher = p.WithMetrics(m)
			defer p.Close()
		}
	}

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo, UserRepo, RedisRepo)
	RequestApp := requestapp.NewRequestApp(TxRepo, RequestRepo, UserRepo, StockRepo, RedisRepo, publisher, m)
	StockApp := stockapp.NewStockApp(TxRepo, StockRepo, RedisRepo, publisher, m)
	DashboardApp := dashboardapp.NewDashboardApp(RequestRepo, StockRepo, ProductRepo, UserRepo, RedisRepo, cfg.Cache.StatsTTL, m)
	NotificationApp := notificationapp.NewNotificationApp(RedisRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.ConsumerEnabled {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL(), NotificationApp)
		if err != nil {
			logger.Warn("err connect rabbitmq consumer, notifications disabled", zap.Error(err))
		} else {
			defer consumer.Close()
			if err := consumer.WithMetrics(m).Start(ctx); err != nil {
				logger.Error("err start consumer", zap.Error(err))
			}
		}
	}

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:         UserApp,
		ProductApp:      ProductApp,
		RequestApp:      RequestApp,
		StockApp:        StockApp,
		DashboardApp:    DashboardApp,
		NotificationApp: NotificationApp,
	}, transport.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		InternalAPIKey: cfg.Internal.APIKey,
		Metrics:        m,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}
