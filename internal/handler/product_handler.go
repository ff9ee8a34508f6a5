package handler

import (
	"net/http"
	"strconv"

	"catalog-service/internal/catalog"
	"catalog-service/internal/store"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandler serves the catalog's product endpoints. The store is
// injected by the composition root; there is no package-level state.
type ProductHandler struct {
	store *store.Store
}

func NewProductHandler(s *store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

// ProductRequest defines the structure for product creation requests
type ProductRequest struct {
	Title       string           `json:"title" validate:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       float64          `json:"price" validate:"gte=0"`
	Category    *CategoryRequest `json:"category"`
	Images      []string         `json:"images"`
}

// CategoryRequest carries an explicit category for a new product; when
// absent the store falls back to the configured default category.
type CategoryRequest struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ListResponse is the current page of the filtered view plus the active
// criteria, so clients can render both.
type ListResponse struct {
	store.PageInfo
	Criteria store.Criteria `json:"criteria"`
}

// ListProducts updates the filter/sort/pagination criteria from the query
// parameters and returns the current page of the filtered view.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	params := c.QueryParams()
	if _, ok := params["search"]; ok {
		h.store.SetSearchTerm(params.Get("search"))
	}
	if _, ok := params["category"]; ok {
		h.store.SetCategory(params.Get("category"))
	}
	if _, ok := params["sort"]; ok {
		h.store.SetSort(params.Get("sort"), params.Get("order") != "desc")
	}
	if pageStr := params.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			h.store.SetPage(page)
		} else {
			log.Warn("Invalid page parameter", zap.String("value", pageStr))
		}
	}

	page := h.store.Page()
	prometheus.RecordProductOperation("list")

	log.Info("Products listed",
		zap.Int("count", len(page.Products)),
		zap.Int("page", page.Page),
		zap.Int("total_pages", page.TotalPages))
	return c.JSON(http.StatusOK, ListResponse{
		PageInfo: page,
		Criteria: h.store.Criteria(),
	})
}

// NextPage advances the view one page, clamped at the last page.
func (h *ProductHandler) NextPage(c echo.Context) error {
	log := logger.FromEcho(c)
	page := h.store.NextPage()
	log.Info("Advanced to next page", zap.Int("page", page))
	return c.JSON(http.StatusOK, ListResponse{
		PageInfo: h.store.Page(),
		Criteria: h.store.Criteria(),
	})
}

// PrevPage steps the view back one page, clamped at page 1.
func (h *ProductHandler) PrevPage(c echo.Context) error {
	log := logger.FromEcho(c)
	page := h.store.PrevPage()
	log.Info("Stepped back to previous page", zap.Int("page", page))
	return c.JSON(http.StatusOK, ListResponse{
		PageInfo: h.store.Page(),
		Criteria: h.store.Criteria(),
	})
}

// GetProduct handles retrieving a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("Invalid product id", zap.String("value", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}

	product, ok := h.store.Get(id)
	if !ok {
		log.Warn("Product not found", zap.Int("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordProductOperation("get")
	log.Info("Product retrieved",
		zap.Int("product_id", id),
		zap.String("title", product.Title))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	input := store.ProductInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
	}
	if req.Category != nil {
		input.Category = &catalog.Category{
			ID:   req.Category.ID,
			Name: req.Category.Name,
			Slug: catalog.Slugify(req.Category.Name),
		}
	}

	product := h.store.AddProduct(input)
	prometheus.RecordProductOperation("create")
	prometheus.UpdateCatalogSize(h.store.Counts())

	log.Info("Product created",
		zap.Int("product_id", product.ID),
		zap.String("title", product.Title),
		zap.Float64("price", product.Price))
	return c.JSON(http.StatusCreated, product)
}

// DeleteProduct soft-deletes a product; the record stays in the catalog.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("Invalid product id", zap.String("value", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}

	if !h.store.SoftDelete(id) {
		log.Warn("Product not found for deletion", zap.Int("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordProductOperation("soft_delete")
	prometheus.UpdateCatalogSize(h.store.Counts())

	log.Info("Product soft-deleted", zap.Int("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

// RestoreProduct clears a product's soft-delete flag.
func (h *ProductHandler) RestoreProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("Invalid product id", zap.String("value", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}

	if !h.store.Restore(id) {
		log.Warn("Product not found for restore", zap.Int("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordProductOperation("restore")
	prometheus.UpdateCatalogSize(h.store.Counts())

	log.Info("Product restored", zap.Int("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product restored successfully",
	})
}
