package dto

import (
	"time"

	"github.com/wolhaven/atelier/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ItemResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Images      []string `json:"images"`

	IsFavorite            bool `json:"is_favorite"`
	FeaturedHaken         bool `json:"featured_haken"`
	FeaturedBorduren      bool `json:"featured_borduren"`
	FeaturedOrderHaken    *int `json:"featured_order_haken,omitempty"`
	FeaturedOrderBorduren *int `json:"featured_order_borduren,omitempty"`
	ManualOrder           int  `json:"manual_order"`

	CategoryIDs []string  `json:"category_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UploadResponse struct {
	URL              string  `json:"url"`
	Path             string  `json:"path"`
	MimeType         string  `json:"mime_type"`
	OriginalSize     int64   `json:"original_size"`
	OptimizedSize    int64   `json:"optimized_size"`
	CompressionRatio float64 `json:"compression_ratio"`
}

func MapItemToResponse(item *domain.Item, categoryIDs []string) *ItemResponse {
	if item == nil {
		return nil
	}

	images := item.Images
	if images == nil {
		images = []string{}
	}

	return &ItemResponse{
		ID:                    item.ID,
		Title:                 item.Title,
		Description:           item.Description,
		Price:                 item.Price,
		Images:                images,
		IsFavorite:            item.IsFavorite,
		FeaturedHaken:         item.FeaturedHaken,
		FeaturedBorduren:      item.FeaturedBorduren,
		FeaturedOrderHaken:    item.FeaturedOrderHaken,
		FeaturedOrderBorduren: item.FeaturedOrderBorduren,
		ManualOrder:           item.ManualOrder,
		CategoryIDs:           categoryIDs,
		CreatedAt:             item.CreatedAt,
		UpdatedAt:             item.UpdatedAt,
	}
}

func MapItemsToResponse(items []*domain.Item) []*ItemResponse {
	responses := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, MapItemToResponse(item, nil))
	}
	return responses
}

func MapUploadToResponse(res *domain.UploadResult) *UploadResponse {
	return &UploadResponse{
		URL:              res.URL,
		Path:             res.Path,
		MimeType:         res.MimeType,
		OriginalSize:     res.OriginalSize,
		OptimizedSize:    res.OptimizedSize,
		CompressionRatio: res.CompressionRatio,
	}
}
