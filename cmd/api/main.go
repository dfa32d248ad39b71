package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/config"
	"github.com/procurehub/backend/internal/db"
	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/events"
	apphttp "github.com/procurehub/backend/internal/http"
	"github.com/procurehub/backend/internal/http/handlers"
	"github.com/procurehub/backend/internal/repositories"
	"github.com/procurehub/backend/internal/services"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage. An empty MONGO_URI runs the API in disabled-storage mode:
	// reads miss, audit writes drop, and the degradation paths above the
	// store take over.
	var store docstore.Store = docstore.NewNoop()
	if cfg.MongoURI != "" {
		mongoDB, err := db.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			log.Fatal("failed to connect to mongo", zap.Error(err))
		}
		defer mongoDB.Client().Disconnect(context.Background())

		if err := db.EnsureIndexes(ctx, mongoDB, log); err != nil {
			log.Fatal("failed to ensure indexes", zap.Error(err))
		}
		store = docstore.NewMongoStore(mongoDB)
	}

	// Redis is optional: without it rate limiting and the live audit
	// stream are off, everything else works.
	var rdb *redis.Client
	var publisher events.Publisher
	var subscriber events.Subscriber
	if r, err := db.NewRedisClient(ctx, cfg.RedisURL, log); err != nil {
		log.Warn("redis unavailable, rate limiting and event streaming disabled", zap.Error(err))
	} else {
		rdb = r
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb, log)
		subscriber = events.NewRedisSubscriber(rdb, log)
	}

	// Repositories
	credentialsRepo := repositories.NewCredentialsRepo(store)
	materialRepo := repositories.NewMaterialRepo(store)
	requisitionRepo := repositories.NewRequisitionRepo(store)

	// Audit and authorization
	authorizer := authz.NewAuthorizer(store, cfg.AdminEmails, log)
	auditWriter := audit.NewWriter(store, publisher, log)
	auditEngine := audit.NewEngine(store, log)

	// Services
	materialService := services.NewMaterialService(materialRepo, auditWriter, log)
	requisitionService := services.NewRequisitionService(requisitionRepo, materialRepo, auditWriter, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(credentialsRepo, authorizer, auditWriter, cfg, log)
	userHandler := handlers.NewUserHandler(authorizer, auditWriter, log)
	materialHandler := handlers.NewMaterialHandler(materialService, log)
	requisitionHandler := handlers.NewRequisitionHandler(requisitionService, log)
	auditHandler := handlers.NewAuditHandler(auditEngine, log)
	wsHub := handlers.NewWSHub(cfg, authorizer, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authorizer, auditWriter, authHandler, userHandler, materialHandler, requisitionHandler, auditHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
