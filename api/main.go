package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/rogerio-castellano/order-tracker/docs"
	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/config"
	"github.com/rogerio-castellano/order-tracker/internal/db"
	oth "github.com/rogerio-castellano/order-tracker/internal/http"
	"github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/order-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/order-tracker/internal/notify"
	"github.com/rogerio-castellano/order-tracker/internal/orders"
	"github.com/rogerio-castellano/order-tracker/internal/redissvc"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

var ctx = context.Background()

// @title Order Tracker API
// @version 1.0
// @description REST API for orders, carts, billing and stock consistency.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go rl.StartVisitorCleanupLoop()

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	handlers.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	orderRepo := repo.NewPostgresOrderRepository(database)
	cartRepo := repo.NewPostgresCartRepository(database)
	billRepo := repo.NewPostgresBillRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)
	movementRepo := repo.NewPostgresMovementRepository(database)
	sequenceRepo := repo.NewPostgresSequenceRepository(database)

	ledger := orders.NewLedger(productRepo, movementRepo)
	orderService := orders.NewService(orderRepo, productRepo, cartRepo, userRepo, sequenceRepo, ledger)

	handlers.SetProductRepo(productRepo)
	handlers.SetOrderRepo(orderRepo)
	handlers.SetCartRepo(cartRepo)
	handlers.SetBillRepo(billRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetLedger(ledger)
	handlers.SetOrderService(orderService)
	handlers.SetMailer(notify.NewMailer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.AlertFrom, cfg.SMTPAuthDisabled))

	r := oth.NewRouter()
	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
