package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/storefront/internal/api/grpc/context"
	grpcrouter "github.com/dtroode/storefront/internal/api/grpc/router"
	grpcserver "github.com/dtroode/storefront/internal/api/grpc/server"
	httpctx "github.com/dtroode/storefront/internal/api/http/context"
	"github.com/dtroode/storefront/internal/api/http/handler"
	httprouter "github.com/dtroode/storefront/internal/api/http/router"
	httpserver "github.com/dtroode/storefront/internal/api/http/server"
	"github.com/dtroode/storefront/internal/config"
	"github.com/dtroode/storefront/internal/invoice"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/mail"
	"github.com/dtroode/storefront/internal/payment/stripe"
	"github.com/dtroode/storefront/internal/repository/postgres"
	"github.com/dtroode/storefront/internal/repository/redis"
	"github.com/dtroode/storefront/internal/server"
	"github.com/dtroode/storefront/internal/service"
	storage "github.com/dtroode/storefront/internal/storage/minio"
	"github.com/dtroode/storefront/internal/token"
	"github.com/dtroode/storefront/internal/web"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	sender, err := mail.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	if err != nil {
		logger.Fatal("failed to create mail sender", "error", err)
	}
	dispatcher := mail.NewDispatcher(sender, logger, cfg.Mail.QueueSize)
	dispatcher.Start(context.WithoutCancel(ctx))

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	productRepo := postgres.NewProductRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	locker := redis.NewLocker(redisClient, "storefront:lock:")
	gateway := stripe.NewGateway(cfg.Stripe.SecretKey)

	sessions := service.NewSessionService(token.NewJWT(cfg.Session.Secret), sessionRepo, cfg.Session.TTL, logger)
	authService := service.NewAuth(userRepo, sessions, dispatcher, service.AuthConfig{
		BcryptCost: cfg.Password.BcryptCost,
		BaseURL:    cfg.BaseURL,
		MailFrom:   cfg.Mail.From,
	}, logger)
	catalogService := service.NewCatalog(productRepo, storageClient, cfg.Catalog.PageSize, logger)
	cartService := service.NewCart(cartRepo, productRepo, logger)
	orderService := service.NewOrder(orderRepo, cartService, gateway, locker, storageClient, invoice.NewRenderer(), service.OrderConfig{
		Currency:       cfg.Stripe.Currency,
		PublishableKey: cfg.Stripe.PublishableKey,
		ChargeTimeout:  cfg.Stripe.Timeout,
		LockTTL:        cfg.Checkout.LockTTL,
	}, logger)
	reconciler := service.NewReconciler(orderRepo, gateway, cfg.Reconcile.StaleAfter, cfg.Reconcile.BatchSize, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", "error", err)
	}

	httpSrv := registerHTTPServer(cfg, logger, authService, catalogService, cartService, orderService, db, renderer)
	grpcSrv := registerGRPCServer(cfg, logger, reconciler, orderService)

	servers := server.NewGroup(logger)
	servers.Add(httpSrv,
		server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName, server.ProtocolsHTTP))
	servers.Add(grpcSrv,
		server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName, server.ProtocolsGRPC))
	servers.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reconciler.Run(ctx, cfg.Reconcile.Interval)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := servers.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()

	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("failed to flush mail queue", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	cfg *config.Config,
	logger *logger.Logger,
	authService *service.Auth,
	catalogService *service.Catalog,
	cartService *service.Cart,
	orderService *service.Order,
	health handler.HealthChecker,
	renderer *web.Renderer,
) *httpserver.HTTPServer {
	r := httprouter.New(httprouter.Config{
		CSRFKey: []byte(cfg.HTTP.CSRFKey),
		Secure:  cfg.HTTP.EnableHTTPS,
		Cookie: handler.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		RequestTimeout: cfg.HTTP.RequestTimeout,
	}, authService, catalogService, cartService, orderService, health, renderer, httpctx.NewManager(), logger)

	return httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
}

func registerGRPCServer(
	cfg *config.Config,
	logger *logger.Logger,
	reconciler *service.Reconciler,
	orderService *service.Order,
) *grpcserver.GRPCServer {
	r := grpcrouter.New(reconciler, orderService, cfg.GRPC.OpsToken, grpcctx.NewManager(), logger)
	s := r.Register()

	reflection.Register(s)

	return grpcserver.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port))
}
