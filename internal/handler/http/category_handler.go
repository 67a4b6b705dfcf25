package http

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/dto"
)

type CategoryHandler struct {
	categories domain.CategoryService
}

func NewCategoryHandler(categories domain.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) RegisterRoutes(engine *ginext.Engine, admin ginext.HandlerFunc) {
	engine.GET("/api/categories", h.ListCategories)
	engine.GET("/api/categories/:id", h.GetCategory)

	engine.POST("/api/categories", admin, h.CreateCategory)
	engine.PUT("/api/categories/:id", admin, h.UpdateCategory)
	engine.DELETE("/api/categories/:id", admin, h.DeleteCategory)
	engine.PATCH("/api/categories/orders", admin, h.ReorderCategories)
}

// ListCategories GET /api/categories
func (h *CategoryHandler) ListCategories(c *ginext.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *ginext.Context) {
	category, err := h.categories.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory POST /api/categories
func (h *CategoryHandler) CreateCategory(c *ginext.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category payload"})
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		ManualOrder: req.ManualOrder,
	}

	created, err := h.categories.CreateCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCategory PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *ginext.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category payload"})
		return
	}

	category := &domain.Category{
		ID:          c.Param("id"),
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		ManualOrder: req.ManualOrder,
	}

	updated, err := h.categories.UpdateCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCategory DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c *ginext.Context) {
	if err := h.categories.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"deleted": true})
}

// ReorderCategories PATCH /api/categories/orders
func (h *CategoryHandler) ReorderCategories(c *ginext.Context) {
	var req dto.OrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid orders payload"})
		return
	}

	if err := h.categories.ReorderCategories(c.Request.Context(), req.Orders); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"updated": len(req.Orders)})
}
