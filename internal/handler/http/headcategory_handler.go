package http

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/dto"
)

type HeadCategoryHandler struct {
	categories domain.CategoryService
}

func NewHeadCategoryHandler(categories domain.CategoryService) *HeadCategoryHandler {
	return &HeadCategoryHandler{categories: categories}
}

func (h *HeadCategoryHandler) RegisterRoutes(engine *ginext.Engine, admin ginext.HandlerFunc) {
	engine.GET("/api/headcategories", h.ListHeadCategories)
	engine.GET("/api/headcategories/:id", h.GetHeadCategory)

	engine.POST("/api/headcategories", admin, h.CreateHeadCategory)
	engine.PUT("/api/headcategories/:id", admin, h.UpdateHeadCategory)
	engine.DELETE("/api/headcategories/:id", admin, h.DeleteHeadCategory)
	engine.PATCH("/api/headcategories/orders", admin, h.ReorderHeadCategories)
}

// ListHeadCategories GET /api/headcategories
func (h *HeadCategoryHandler) ListHeadCategories(c *ginext.Context) {
	heads, err := h.categories.ListHeadCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, heads)
}

// GetHeadCategory GET /api/headcategories/:id
func (h *HeadCategoryHandler) GetHeadCategory(c *ginext.Context) {
	head, err := h.categories.GetHeadCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	categoryIDs, err := h.categories.HeadCategoryIDs(c.Request.Context(), head.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{
		"id":           head.ID,
		"name":         head.Name,
		"image_url":    head.ImageURL,
		"manual_order": head.ManualOrder,
		"created_at":   head.CreatedAt,
		"category_ids": categoryIDs,
	})
}

// CreateHeadCategory POST /api/headcategories
func (h *HeadCategoryHandler) CreateHeadCategory(c *ginext.Context) {
	var req dto.HeadCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid headcategory payload"})
		return
	}

	head := &domain.HeadCategory{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		ManualOrder: req.ManualOrder,
	}

	created, err := h.categories.CreateHeadCategory(c.Request.Context(), head, req.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHeadCategory PUT /api/headcategories/:id
func (h *HeadCategoryHandler) UpdateHeadCategory(c *ginext.Context) {
	var req dto.HeadCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid headcategory payload"})
		return
	}

	head := &domain.HeadCategory{
		ID:          c.Param("id"),
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		ManualOrder: req.ManualOrder,
	}

	updated, err := h.categories.UpdateHeadCategory(c.Request.Context(), head, req.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHeadCategory DELETE /api/headcategories/:id
func (h *HeadCategoryHandler) DeleteHeadCategory(c *ginext.Context) {
	if err := h.categories.DeleteHeadCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"deleted": true})
}

// ReorderHeadCategories PATCH /api/headcategories/orders
func (h *HeadCategoryHandler) ReorderHeadCategories(c *ginext.Context) {
	var req dto.OrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid orders payload"})
		return
	}

	if err := h.categories.ReorderHeadCategories(c.Request.Context(), req.Orders); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"updated": len(req.Orders)})
}
