package handler

import (
	"net/http"
	"time"

	"catalog-service/internal/store"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service liveness and catalog load state.
type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Health returns the service status. An empty catalog is healthy: a failed
// feed load degrades to zero products, not to an error state.
func (h *HealthHandler) Health(c echo.Context) error {
	total, deleted := h.store.Counts()
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"products":  total,
		"deleted":   deleted,
		"loaded_at": h.store.LoadedAt().Format(time.RFC3339),
	})
}
