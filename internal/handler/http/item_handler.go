package http

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/dto"
)

type ItemHandler struct {
	catalog domain.CatalogService
}

func NewItemHandler(catalog domain.CatalogService) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

func (h *ItemHandler) RegisterRoutes(engine *ginext.Engine, admin ginext.HandlerFunc) {
	engine.GET("/api/items", h.ListItems)
	engine.GET("/api/items/channel/:channel", h.ListChannelItems)
	engine.GET("/api/items/:id", h.GetItem)

	engine.POST("/api/items", admin, h.CreateItem)
	engine.PUT("/api/items/:id", admin, h.UpdateItem)
	engine.DELETE("/api/items/:id", admin, h.DeleteItem)
	engine.PATCH("/api/items/orders", admin, h.ReorderItems)
	engine.PUT("/api/items/:id/favorite", admin, h.SetFavorite)
	engine.PUT("/api/items/:id/featured/:channel", admin, h.SetFeatured)
}

// ListItems GET /api/items
func (h *ItemHandler) ListItems(c *ginext.Context) {
	items, err := h.catalog.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapItemsToResponse(items))
}

// ListChannelItems GET /api/items/channel/:channel
func (h *ItemHandler) ListChannelItems(c *ginext.Context) {
	ch, err := domain.ParseChannel(c.Param("channel"))
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.catalog.ListChannelItems(c.Request.Context(), ch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapItemsToResponse(items))
}

// GetItem GET /api/items/:id
func (h *ItemHandler) GetItem(c *ginext.Context) {
	item, err := h.catalog.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	categoryIDs, err := h.catalog.ItemCategoryIDs(c.Request.Context(), item.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapItemToResponse(item, categoryIDs))
}

// CreateItem POST /api/items
func (h *ItemHandler) CreateItem(c *ginext.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid item payload"})
		return
	}

	item := &domain.Item{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		ManualOrder: req.ManualOrder,
	}

	created, err := h.catalog.CreateItem(c.Request.Context(), item, req.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapItemToResponse(created, req.CategoryIDs))
}

// UpdateItem PUT /api/items/:id
func (h *ItemHandler) UpdateItem(c *ginext.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid item payload"})
		return
	}

	item := &domain.Item{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		ManualOrder: req.ManualOrder,
	}

	updated, err := h.catalog.UpdateItem(c.Request.Context(), item, req.CategoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapItemToResponse(updated, req.CategoryIDs))
}

// DeleteItem DELETE /api/items/:id
func (h *ItemHandler) DeleteItem(c *ginext.Context) {
	if err := h.catalog.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"deleted": true})
}

// ReorderItems PATCH /api/items/orders
func (h *ItemHandler) ReorderItems(c *ginext.Context) {
	var req dto.OrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid orders payload"})
		return
	}

	if err := h.catalog.ReorderItems(c.Request.Context(), req.Orders); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ginext.H{"updated": len(req.Orders)})
}

// SetFavorite PUT /api/items/:id/favorite
func (h *ItemHandler) SetFavorite(c *ginext.Context) {
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid favorite payload"})
		return
	}

	item, err := h.catalog.SetFavorite(c.Request.Context(), c.Param("id"), req.Favorite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapItemToResponse(item, nil))
}

// SetFeatured PUT /api/items/:id/featured/:channel
func (h *ItemHandler) SetFeatured(c *ginext.Context) {
	ch, err := domain.ParseChannel(c.Param("channel"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.FeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid featured payload"})
		return
	}

	item, err := h.catalog.SetFeatured(c.Request.Context(), c.Param("id"), ch, req.Featured)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapItemToResponse(item, nil))
}
