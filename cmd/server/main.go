package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/config"
	"github.com/sellerapp/storefront-api/internal/database"
	"github.com/sellerapp/storefront-api/internal/handler"
	"github.com/sellerapp/storefront-api/internal/metrics"
	"github.com/sellerapp/storefront-api/internal/middleware"
	"github.com/sellerapp/storefront-api/internal/queue"
	"github.com/sellerapp/storefront-api/internal/repository"
	"github.com/sellerapp/storefront-api/internal/router"
	queue_publisher "github.com/sellerapp/storefront-api/internal/service"
	"github.com/sellerapp/storefront-api/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter, verification codes and the slug cache.
	// The service stays up without it, minus those conveniences.
	rdb := config.NewRedisClient()

	images, err := storage.NewImageStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	verifications := repository.NewVerificationRepo(rdb)
	stores := repository.NewStoreRepo(db, rdb)
	products := repository.NewProductRepo(db)
	visits := repository.NewVisitRepo(db)

	m := metrics.NewPlatformMetrics()

	// Visit events arrive over RabbitMQ; the consumer retries the broker
	// connection forever so a late broker start is not fatal.
	go func() {
		if err := queue.StartVisitConsumer(cfg.RabbitURL, visits, m); err != nil {
			log.Printf("visit consumer stopped: %v", err)
		}
	}()
	events := queue_publisher.New(cfg.RabbitURL)

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens, verifications, m)
	sellerH := handler.NewSellerHandler(cfg, stores, products, images, m)
	publicH := handler.NewPublicHandler(stores, products, events, m)
	adminH := handler.NewAdminHandler(stores, m)

	router.RegisterRoutes(e, cfg)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterPublic(e, publicH)
	router.RegisterSeller(e, sellerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
