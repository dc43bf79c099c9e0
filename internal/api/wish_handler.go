// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/platform/logger"
	"github.com/phrazzld/wishlist-api/internal/safejson"
	"github.com/phrazzld/wishlist-api/internal/service"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// WishHandler handles wish-related HTTP requests.
type WishHandler struct {
	wishService *service.WishService
	wishStore   store.WishStore
	logger      *slog.Logger
}

// NewWishHandler creates a new WishHandler.
func NewWishHandler(
	wishService *service.WishService,
	wishStore store.WishStore,
	logger *slog.Logger,
) *WishHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WishHandler")
	}
	return &WishHandler{
		wishService: wishService,
		wishStore:   wishStore,
		logger:      logger.With(slog.String("component", "wish_handler")),
	}
}

// List handles GET /wishes requests.
func (h *WishHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	wishes, err := h.wishStore.List(r.Context(), owner)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wishes)
}

// PriceLess handles GET /wishes/price/less?price=D requests.
func (h *WishHandler) PriceLess(w http.ResponseWriter, r *http.Request) {
	h.priceFilter(w, r, h.wishStore.FilterPriceBelow)
}

// PriceGreater handles GET /wishes/price/greater?price=D requests.
func (h *WishHandler) PriceGreater(w http.ResponseWriter, r *http.Request) {
	h.priceFilter(w, r, h.wishStore.FilterPriceAbove)
}

// ByCategory handles GET /wishes/category/{name} requests.
func (h *WishHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	wishes, err := h.wishStore.FilterCategory(r.Context(), owner, chi.URLParam(r, "name"))
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wishes)
}

// Sorted handles GET /wishes/sorted?order_by=...&ascending=... requests.
func (h *WishHandler) Sorted(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	// Only an absent order_by falls back to the default; an explicitly empty
	// value is an invalid sort key like any other unrecognized one.
	query := r.URL.Query()
	orderBy := "price_estimate"
	if query.Has("order_by") {
		orderBy = query.Get("order_by")
	}
	key, err := store.ParseSortKey(orderBy)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}

	ascending := true
	if raw := query.Get("ascending"); raw != "" {
		ascending, err = strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithAPIError(w, r, ValidationError("validation error"))
			return
		}
	}

	wishes, err := h.wishStore.Sorted(r.Context(), owner, key, ascending)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wishes)
}

// Export handles GET /wishes/export requests.
func (h *WishHandler) Export(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	wishes, err := h.wishStore.List(r.Context(), owner)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"backup": wishes,
		"count":  len(wishes),
	})
}

// ImportResponse is the body of a successful POST /wishes/import.
type ImportResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Import handles POST /wishes/import requests. The whole batch is validated
// before anything is stored; a single bad entry rejects the import.
func (h *WishHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	raw, err := readBody(r)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}

	count, err := h.wishService.ImportBackup(r.Context(), owner, raw)
	if err != nil {
		log.Debug("import rejected", slog.String("owner", owner), slog.String("error", err.Error()))
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{Status: "restored", Count: count})
}

// Create handles POST /wishes requests.
func (h *WishHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	raw, err := readBody(r)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}

	wish, err := h.wishService.CreateFromBody(r.Context(), owner, raw)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wish)
}

// Get handles GET /wishes/{wishID} requests.
func (h *WishHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	id, ok := h.wishID(w, r)
	if !ok {
		return
	}

	wish, err := h.wishStore.Get(r.Context(), owner, id)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wish)
}

// Update handles PUT /wishes/{wishID} requests. The stored record is fully
// replaced; its position in insertion order is preserved.
func (h *WishHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	id, ok := h.wishID(w, r)
	if !ok {
		return
	}

	raw, err := readBody(r)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}

	wish, err := h.wishService.UpdateFromBody(r.Context(), owner, id, raw)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wish)
}

// Delete handles DELETE /wishes/{wishID} requests.
func (h *WishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	id, ok := h.wishID(w, r)
	if !ok {
		return
	}

	if err := h.wishStore.Delete(r.Context(), owner, id); err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// priceFilter is the shared implementation of the price threshold endpoints.
func (h *WishHandler) priceFilter(
	w http.ResponseWriter,
	r *http.Request,
	filter func(ctx context.Context, owner string, limit decimal.Decimal) ([]domain.Wish, error),
) {
	owner, ok := shared.Owner(r.Context())
	if !ok {
		h.respondUnauthenticated(w, r)
		return
	}

	limit, err := decimal.NewFromString(r.URL.Query().Get("price"))
	if err != nil {
		shared.RespondWithAPIError(w, r, ValidationError("validation error"))
		return
	}

	wishes, err := filter(r.Context(), owner, limit)
	if err != nil {
		shared.RespondWithAPIError(w, r, MapError(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, wishes)
}

// wishID parses the {wishID} path parameter, rendering a validation error on
// failure.
func (h *WishHandler) wishID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "wishID"), 10, 64)
	if err != nil {
		shared.RespondWithAPIError(w, r, ValidationError("validation error"))
		return 0, false
	}
	return id, true
}

func (h *WishHandler) respondUnauthenticated(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("owner not found in request context")
	shared.RespondWithAPIError(w, r, shared.APIError{
		Status:  http.StatusUnauthorized,
		Code:    shared.CodeHTTPError,
		Message: "unauthorized",
	})
}

// readBody drains the request body within the safe-JSON size budget. One
// extra byte is read so oversized bodies are detected without buffering an
// unbounded stream.
func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, safejson.MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > safejson.MaxBodyBytes {
		return nil, safejson.ErrTooLarge
	}
	return raw, nil
}
