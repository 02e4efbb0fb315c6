package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lusotown/community-platform/internal/config"
	"github.com/lusotown/community-platform/internal/handler"
	"github.com/lusotown/community-platform/internal/middleware"
	"github.com/lusotown/community-platform/internal/payment"
	"github.com/lusotown/community-platform/internal/queue"
	"github.com/lusotown/community-platform/internal/repository"
	"github.com/lusotown/community-platform/internal/router"
	"github.com/lusotown/community-platform/internal/service"
	"github.com/lusotown/community-platform/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the vars

	cfg := config.Load()

	// storage: Redis when reachable, in-memory otherwise so the service
	// still comes up in local development
	rdb := config.NewRedisClient()
	var store storage.Store
	if rdb != nil {
		store = storage.NewRedisStore(rdb)
	} else {
		log.Println("main: redis unavailable, using in-memory storage")
		store = storage.NewMemoryStore()
	}

	// repositories
	cartRepo := repository.NewCartRepo(store)
	savedRepo := repository.NewSavedRepo(store)
	networkRepo := repository.NewNetworkRepo(store)
	subsRepo := repository.NewSubscriptionRepo(store)
	notifRepo := repository.NewNotificationRepo(store)
	integrationRepo := repository.NewIntegrationRepo(store)
	prefRepo := repository.NewPreferenceRepo(store)

	// collaborators
	payments := payment.NewClient(cfg.PaymentBaseURL)
	verifier := payment.NewVerificationClient(cfg.VerificationBaseURL)
	publisher := queue.NewPublisher()

	// services
	cartSvc := service.NewCartService(cartRepo)
	favSvc := service.NewFavoritesService(savedRepo)
	networkSvc := service.NewNetworkingService(networkRepo)
	subsSvc := service.NewSubscriptionService(subsRepo, payments, verifier)
	notifSvc := service.NewNotificationService(notifRepo, prefRepo, publisher)
	integrationSvc := service.NewIntegrationService(integrationRepo, cartSvc, networkSvc, subsSvc)

	// delivery consumer runs for the life of the process and reconnects on
	// broker failures
	go func() {
		if err := queue.StartDeliveryConsumer(); err != nil {
			log.Printf("main: delivery consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)

	api := e.Group("/v1", middleware.Identity())
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	api.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterAPI(api, router.Handlers{
		Cart:          handler.NewCartHandler(cartSvc),
		Saved:         handler.NewSavedHandler(favSvc),
		Networking:    handler.NewNetworkingHandler(networkSvc),
		Subscription:  handler.NewSubscriptionHandler(subsSvc),
		Notifications: handler.NewNotificationHandler(notifSvc),
		Integration:   handler.NewIntegrationHandler(integrationSvc),
		Preferences:   handler.NewPreferencesHandler(prefRepo),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
