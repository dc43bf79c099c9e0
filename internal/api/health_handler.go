package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// HealthHandler serves the unauthenticated health and metrics endpoints.
type HealthHandler struct {
	wishStore store.WishStore
	startedAt time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a HealthHandler. Uptime is measured from the
// moment the handler is constructed.
func NewHealthHandler(wishStore store.WishStore, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		wishStore: wishStore,
		startedAt: time.Now(),
		logger:    logger.With(slog.String("component", "health_handler")),
	}
}

// MetricsResponse is the body of GET /metrics. The average price aggregates
// over all owners on purpose; it is an internal ops metric, not a per-tenant
// view. avg_price is emitted from the exact decimal so the JSON number never
// picks up binary rounding noise.
type MetricsResponse struct {
	UptimeSeconds float64     `json:"uptime_s"`
	TotalWishes   int         `json:"total_wishes"`
	AveragePrice  json.Number `json:"avg_price"`
}

// Health handles GET /health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics requests.
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	total, err := h.wishStore.Count(r.Context())
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	avg, err := h.wishStore.AveragePrice(r.Context())
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}

	uptime := time.Since(h.startedAt).Seconds()
	shared.RespondWithJSON(w, r, http.StatusOK, MetricsResponse{
		UptimeSeconds: float64(int(uptime*100)) / 100,
		TotalWishes:   total,
		AveragePrice:  json.Number(avg.Round(2).String()),
	})
}
