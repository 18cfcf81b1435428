package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/supermarket/internal/auth"
	"github.com/rogerio-castellano/supermarket/internal/config"
	"github.com/rogerio-castellano/supermarket/internal/db"
	"github.com/rogerio-castellano/supermarket/internal/http/ban"
	"github.com/rogerio-castellano/supermarket/internal/http/handlers"
	rl "github.com/rogerio-castellano/supermarket/internal/http/rate_limiter"
	"github.com/rogerio-castellano/supermarket/internal/http/router"
	"github.com/rogerio-castellano/supermarket/internal/logger"
	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/redissvc"
	"github.com/rogerio-castellano/supermarket/internal/repo"
	"github.com/rogerio-castellano/supermarket/internal/service"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rogerio-castellano/supermarket/internal/upload"
	"github.com/rogerio-castellano/supermarket/internal/views"
	"github.com/rs/zerolog"
)

type repositories struct {
	products repo.ProductRepository
	users    repo.UserRepository
	metrics  repo.MetricsRepository
	close    func()
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if !cfg.EnvFileLoaded {
		log.Debug().Msg("No .env file found, reading configuration from the environment")
	}
	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("SESSION_SECRET is not set; session cookies are signed with the default secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := openRepositories(cfg, log)
	defer repos.close()

	var (
		store   session.Store
		counter ban.Counter
	)
	switch cfg.SessionStore {
	case "memory":
		mem := session.NewMemoryStore()
		go mem.StartSweeper(ctx, 10*time.Minute)
		store, counter = mem, ban.NewMemoryCounter()
		log.Warn().Msg("Using in-memory sessions; they are lost on restart")
	default:
		redisService, err := redissvc.Connect(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not connect to Redis")
		}
		defer redisService.Close()
		store = session.NewRedisStore(redisService.Rdb())
		counter = ban.NewRedisCounter(redisService.Rdb())
	}

	handlers.SetLogger(log)
	handlers.SetProductService(service.NewProductService(repos.products, repos.metrics, log))
	handlers.SetCartService(service.NewCartService(repos.products, log))
	handlers.SetAuthService(service.NewAuthService(repos.users, log))
	handlers.SetUploadStorage(upload.NewStorage(cfg.UploadDir))
	handlers.SetRenderer(views.Must())

	guard := ban.NewGuard(counter, cfg.LoginMaxFailures, cfg.LoginFailureWindow, cfg.LoginBanDuration, log)
	handlers.SetLoginGuard(guard)

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if cfg.TrustProxyHeaders {
		log.Warn().Msg("Trusting X-Forwarded-For for client addresses; only do this behind a proxy")
	}
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute)

	tokens := auth.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL)
	r := router.NewRouter(router.Config{
		Sessions:   session.NewManager(store, tokens, log),
		Limiter:    limiter,
		LoginGuard: guard,
		Logger:     log,
		StaticDir:  cfg.StaticDir,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

func openRepositories(cfg config.Config, log zerolog.Logger) repositories {
	if cfg.Database.Driver == "memory" {
		products := repo.NewInMemoryProductRepository()
		seedProducts(products, log)
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		return repositories{
			products: products,
			users:    repo.NewInMemoryUserRepository(),
			metrics:  repo.NewInMemoryMetricsRepository(products),
			close:    func() {},
		}
	}

	database, dialect, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	if err := db.RunMigrations(database, dialect); err != nil {
		database.Close()
		log.Fatal().Err(err).Msg("Could not run migrations")
	}
	log.Info().Str("dialect", string(dialect)).Msg("Connected to database")

	return repositories{
		products: repo.NewSQLProductRepository(database, dialect),
		users:    repo.NewSQLUserRepository(database, dialect),
		metrics:  repo.NewSQLMetricsRepository(database, dialect),
		close:    func() { database.Close() },
	}
}

func seedProducts(products repo.ProductRepository, log zerolog.Logger) {
	seed := []models.Product{
		{ProductName: "Apples", Quantity: 50, Price: 1.50, Image: "apples.png"},
		{ProductName: "Bananas", Quantity: 75, Price: 0.80, Image: "bananas.png"},
		{ProductName: "Milk", Quantity: 20, Price: 3.50, Image: "milk.png"},
		{ProductName: "Bread", Quantity: 25, Price: 1.80, Image: "bread.png"},
	}
	for _, p := range seed {
		if _, err := products.Create(context.Background(), p); err != nil {
			log.Error().Err(err).Str("product", p.ProductName).Msg("Failed to seed product")
		}
	}
}
