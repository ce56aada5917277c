package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	repo "github.com/rogerio-castellano/order-tracker/internal/repo"
)

const dashboardCacheKey = "metrics:dashboard"
const dashboardCacheTTL = 30 * time.Second

// GetDashboardMetricsHandler godoc
// @Summary Aggregated dashboard figures
// @Description Stock and order counters plus revenue; served from a short-lived cache
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Metrics
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if redisService != nil {
		if cached, ok := redisService.GetCached(dashboardCacheKey); ok {
			var metrics repo.Metrics
			if err := json.Unmarshal([]byte(cached), &metrics); err == nil {
				json.NewEncoder(w).Encode(metrics)
				return
			}
		}
	}

	metrics, err := metricsRepo.GetDashboardMetrics()
	if err != nil {
		http.Error(w, "could not compute metrics", http.StatusInternalServerError)
		return
	}

	if redisService != nil {
		if payload, err := json.Marshal(metrics); err == nil {
			redisService.SetCached(dashboardCacheKey, string(payload), dashboardCacheTTL)
		}
	}

	json.NewEncoder(w).Encode(metrics)
}
