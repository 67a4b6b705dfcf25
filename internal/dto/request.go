package dto

import "github.com/wolhaven/atelier/internal/domain"

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type ItemRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	CategoryIDs []string `json:"category_ids"`
	ManualOrder int      `json:"manual_order"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	ImageURL    string `json:"image_url"`
	ManualOrder int    `json:"manual_order"`
}

type HeadCategoryRequest struct {
	Name        string   `json:"name" binding:"required"`
	ImageURL    string   `json:"image_url"`
	ManualOrder int      `json:"manual_order"`
	CategoryIDs []string `json:"category_ids"`
}

type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

type FeaturedRequest struct {
	Featured bool `json:"featured"`
}

type OrdersRequest struct {
	Orders []domain.OrderUpdate `json:"orders" binding:"required"`
}

// ThumbnailTask is the queue message consumed by the thumbnail worker.
type ThumbnailTask struct {
	ObjectPath string `json:"object_path"`
}
