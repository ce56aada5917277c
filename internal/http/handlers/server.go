package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/order-tracker/internal/notify"
	"github.com/rogerio-castellano/order-tracker/internal/orders"
	"github.com/rogerio-castellano/order-tracker/internal/redissvc"
	repo "github.com/rogerio-castellano/order-tracker/internal/repo"
)

var (
	productRepo  repo.ProductRepository
	orderRepo    repo.OrderRepository
	cartRepo     repo.CartRepository
	billRepo     repo.BillRepository
	userRepo     repo.UserRepository
	movementRepo repo.MovementRepository
	metricsRepo  repo.MetricsRepository

	orderService *orders.Service
	ledger       *orders.Ledger
	mailer       *notify.Mailer

	redisService *redissvc.RedisService
	Rdb          *redis.Client
	Ctx          context.Context
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetCartRepo(r repo.CartRepository) {
	cartRepo = r
}

func SetBillRepo(r repo.BillRepository) {
	billRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetOrderService(s *orders.Service) {
	orderService = s
}

func SetLedger(l *orders.Ledger) {
	ledger = l
}

func SetMailer(m *notify.Mailer) {
	mailer = m
}

func SetRedisService(rs *redissvc.RedisService) {
	redisService = rs
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
}
