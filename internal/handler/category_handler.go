package handler

import (
	"net/http"

	"catalog-service/internal/store"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryHandler serves the derived category list and catalog statistics.
type CategoryHandler struct {
	store *store.Store
}

func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// ListCategories returns the deduplicated categories of the catalog,
// first-seen order preserved.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	categories := h.store.Categories()
	prometheus.RecordCategoryOperation("list")

	log.Info("Categories listed", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetStats returns catalog aggregates.
func (h *CategoryHandler) GetStats(c echo.Context) error {
	log := logger.FromEcho(c)

	stats := h.store.Stats()
	prometheus.RecordCategoryOperation("stats")

	log.Info("Stats computed",
		zap.Int("total_products", stats.TotalProducts),
		zap.Int("total_categories", stats.TotalCategories))
	return c.JSON(http.StatusOK, stats)
}
