package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/freshline/supply-backend/internal/cache"
	"github.com/freshline/supply-backend/internal/config"
	"github.com/freshline/supply-backend/internal/database"
	"github.com/freshline/supply-backend/internal/httpx"
	"github.com/freshline/supply-backend/internal/logger"
	"github.com/freshline/supply-backend/internal/modules/analytics"
	"github.com/freshline/supply-backend/internal/modules/auth"
	"github.com/freshline/supply-backend/internal/modules/borrowing"
	"github.com/freshline/supply-backend/internal/modules/catalog"
	"github.com/freshline/supply-backend/internal/modules/delivery"
	"github.com/freshline/supply-backend/internal/modules/inventory"
	"github.com/freshline/supply-backend/internal/modules/reservation"
	"github.com/freshline/supply-backend/internal/modules/user"
	"github.com/freshline/supply-backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := config.ValidateForProduction(cfg); err != nil {
		log.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, migrations.FS); err != nil {
		log.Error("migrate database", "error", err)
		os.Exit(1)
	}
	log.Info("database ready")

	// The projection cache is best-effort; the API runs without it.
	var projections analytics.ProjectionStore
	redisClient, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, projections uncached", "error", err)
	} else {
		defer redisClient.Close()
		projections = analytics.NewProjectionCache(redisClient)
	}

	scope := database.NewScope(db)

	// ── Reference data ──────────────────────────────────────
	fruitRepo := catalog.NewFruitPostgresRepository(db)
	shopRepo := catalog.NewShopPostgresRepository(db)
	warehouseRepo := catalog.NewWarehousePostgresRepository(db)
	catalogService := catalog.NewService(fruitRepo, shopRepo, warehouseRepo)

	// ── Stock ledger ────────────────────────────────────────
	stock := inventory.NewPostgresStore(db)
	inventoryService := inventory.NewService(stock)

	// ── Workflows ───────────────────────────────────────────
	borrowingRepo := borrowing.NewPostgresRepository(db)
	borrowingService := borrowing.NewService(borrowingRepo, stock, fruitRepo, shopRepo, scope)

	deliveryRepo := delivery.NewPostgresRepository(db)
	deliveryService := delivery.NewService(deliveryRepo)

	reservationRepo := reservation.NewPostgresRepository(db)
	reservationService := reservation.NewService(
		reservationRepo, stock, deliveryRepo, fruitRepo, shopRepo, warehouseRepo, scope)

	// ── Projections ─────────────────────────────────────────
	analyticsRepo := analytics.NewPostgresRepository(db)
	analyticsService := analytics.NewService(analyticsRepo, projections, log)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	permissions := auth.DefaultPermissions()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logger.Middleware(log))
	router.Use(logger.Recovery(log))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	auth.NewHandler(authService).RegisterRoutes(router)
	user.NewHandler(userService).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authService, permissions))

		catalog.NewHandler(catalogService).RegisterRoutes(r)
		inventory.NewHandler(inventoryService).RegisterRoutes(r)
		borrowing.NewHandler(borrowingService).RegisterRoutes(r)
		reservation.NewHandler(reservationService).RegisterRoutes(r)
		delivery.NewHandler(deliveryService).RegisterRoutes(r)
		analytics.NewHandler(analyticsService).RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
	log.Info("server stopped")
}
