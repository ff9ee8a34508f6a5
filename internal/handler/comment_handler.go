package handler

import (
	"net/http"
	"strconv"

	"catalog-service/internal/store"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CommentHandler serves per-product comment CRUD.
type CommentHandler struct {
	store *store.Store
}

func NewCommentHandler(s *store.Store) *CommentHandler {
	return &CommentHandler{store: s}
}

// CommentRequest defines the structure for comment creation/update requests.
// An empty author falls back to the configured default.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}

// AddComment appends a comment to a product.
func (h *CommentHandler) AddComment(c echo.Context) error {
	log := logger.FromEcho(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("Invalid product id", zap.String("value", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Comment request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	comment, ok := h.store.AddComment(productID, req.Content, req.Author)
	if !ok {
		log.Warn("Product not found for comment", zap.Int("product_id", productID))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordCommentOperation("create")
	log.Info("Comment added",
		zap.Int("product_id", productID),
		zap.String("comment_id", comment.ID),
		zap.String("author", comment.Author))
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment replaces a comment's content.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	log := logger.FromEcho(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("Invalid product id", zap.String("value", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	commentID := c.Param("commentId")

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Comment request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if !h.store.UpdateComment(productID, commentID, req.Content) {
		log.Warn("Comment not found for update",
			zap.Int("product_id", productID),
			zap.String("comment_id", commentID))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Comment not found",
		})
	}

	prometheus.RecordCommentOperation("update")
	log.Info("Comment updated",
		zap.Int("product_id", productID),
		zap.String("comment_id", commentID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Comment updated successfully",
	})
}

// DeleteComment removes a comment from a product. Comments are hard-deleted.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	log := logger.FromEcho(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		log.Warn("Invalid product id", zap.String("value", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product id",
		})
	}
	commentID := c.Param("commentId")

	if !h.store.DeleteComment(productID, commentID) {
		log.Warn("Comment not found for deletion",
			zap.Int("product_id", productID),
			zap.String("comment_id", commentID))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Comment not found",
		})
	}

	prometheus.RecordCommentOperation("delete")
	log.Info("Comment deleted",
		zap.Int("product_id", productID),
		zap.String("comment_id", commentID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Comment deleted successfully",
	})
}
