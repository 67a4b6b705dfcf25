package domain

import "context"

type ItemRepository interface {
	Create(ctx context.Context, item *Item, categoryIDs []string) error
	FindByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, item *Item, categoryIDs []string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Item, error)
	ListByChannel(ctx context.Context, ch Channel) ([]*Item, error)
	CategoryIDs(ctx context.Context, itemID string) ([]string, error)

	CountFavorites(ctx context.Context) (int, error)
	CountFeatured(ctx context.Context, ch Channel) (int, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	// SetFeaturedOrder writes the flag and order columns for one item in
	// one channel. A nil order stores NULL.
	SetFeaturedOrder(ctx context.Context, id string, ch Channel, featured bool, order *int) error
	// ShiftFeaturedOrders increments every non-null featured order in the
	// channel by one.
	ShiftFeaturedOrders(ctx context.Context, ch Channel) error

	UpdateOrder(ctx context.Context, id string, order int) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Category, error)
	UpdateOrder(ctx context.Context, id string, order int) error
}

type HeadCategoryRepository interface {
	Create(ctx context.Context, head *HeadCategory, categoryIDs []string) error
	FindByID(ctx context.Context, id string) (*HeadCategory, error)
	Update(ctx context.Context, head *HeadCategory, categoryIDs []string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*HeadCategory, error)
	CategoryIDs(ctx context.Context, headID string) ([]string, error)
	UpdateOrder(ctx context.Context, id string, order int) error
}
