package domain

import "context"

type CatalogService interface {
	CreateItem(ctx context.Context, item *Item, categoryIDs []string) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	UpdateItem(ctx context.Context, item *Item, categoryIDs []string) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context) ([]*Item, error)
	ListChannelItems(ctx context.Context, ch Channel) ([]*Item, error)

	SetFavorite(ctx context.Context, id string, favorite bool) (*Item, error)
	SetFeatured(ctx context.Context, id string, ch Channel, featured bool) (*Item, error)
	ReorderItems(ctx context.Context, updates []OrderUpdate) error
	ItemCategoryIDs(ctx context.Context, itemID string) ([]string, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*Category, error)
	ReorderCategories(ctx context.Context, updates []OrderUpdate) error

	CreateHeadCategory(ctx context.Context, head *HeadCategory, categoryIDs []string) (*HeadCategory, error)
	GetHeadCategory(ctx context.Context, id string) (*HeadCategory, error)
	UpdateHeadCategory(ctx context.Context, head *HeadCategory, categoryIDs []string) (*HeadCategory, error)
	DeleteHeadCategory(ctx context.Context, id string) error
	ListHeadCategories(ctx context.Context) ([]*HeadCategory, error)
	HeadCategoryIDs(ctx context.Context, headID string) ([]string, error)
	ReorderHeadCategories(ctx context.Context, updates []OrderUpdate) error
}

type UploadService interface {
	// Upload validates, optimizes and stores a single image, returning
	// the public URL plus before/after byte sizes.
	Upload(ctx context.Context, filename, mimeType string, data []byte) (*UploadResult, error)
}

type UploadResult struct {
	URL              string  `json:"url"`
	Path             string  `json:"path"`
	MimeType         string  `json:"mime_type"`
	OriginalSize     int64   `json:"original_size"`
	OptimizedSize    int64   `json:"optimized_size"`
	CompressionRatio float64 `json:"compression_ratio"`
}

type ThumbnailService interface {
	GenerateThumbnail(ctx context.Context, objectPath string) error
}

type QueueService interface {
	PublishThumbnailTask(ctx context.Context, objectPath string) error
	Close() error
}
