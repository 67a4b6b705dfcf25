package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
)

type CatalogUsecase struct {
	items domain.ItemRepository

	maxFavorites          int
	maxFeaturedPerChannel int

	// mu serializes favorite/featured toggles so that two concurrent
	// activations cannot read the same counts or collide on the
	// head-insert shift. The resulting ordering semantics are the same
	// as the unserialized flow.
	mu sync.Mutex
}

func NewCatalogUsecase(items domain.ItemRepository, maxFavorites, maxFeaturedPerChannel int) *CatalogUsecase {
	return &CatalogUsecase{
		items:                 items,
		maxFavorites:          maxFavorites,
		maxFeaturedPerChannel: maxFeaturedPerChannel,
	}
}

func (u *CatalogUsecase) CreateItem(ctx context.Context, item *domain.Item, categoryIDs []string) (*domain.Item, error) {
	if item.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	now := time.Now()
	item.ID = uuid.New().String()
	item.IsFavorite = false
	item.FeaturedHaken = false
	item.FeaturedBorduren = false
	item.FeaturedOrderHaken = nil
	item.FeaturedOrderBorduren = nil
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := u.items.Create(ctx, item, categoryIDs); err != nil {
		return nil, err
	}

	zlog.Logger.Info().Str("item_id", item.ID).Str("title", item.Title).Msg("catalog item created")
	return item, nil
}

func (u *CatalogUsecase) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return u.items.FindByID(ctx, id)
}

func (u *CatalogUsecase) UpdateItem(ctx context.Context, item *domain.Item, categoryIDs []string) (*domain.Item, error) {
	if item.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	existing, err := u.items.FindByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = item.Title
	existing.Description = item.Description
	existing.Price = item.Price
	existing.Images = item.Images
	existing.ManualOrder = item.ManualOrder

	if err := u.items.Update(ctx, existing, categoryIDs); err != nil {
		return nil, err
	}
	return u.items.FindByID(ctx, item.ID)
}

func (u *CatalogUsecase) DeleteItem(ctx context.Context, id string) error {
	return u.items.Delete(ctx, id)
}

// ListItems returns all items in the deterministic catalog order.
func (u *CatalogUsecase) ListItems(ctx context.Context) ([]*domain.Item, error) {
	items, err := u.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Rank(items), nil
}

func (u *CatalogUsecase) ListChannelItems(ctx context.Context, ch domain.Channel) ([]*domain.Item, error) {
	return u.items.ListByChannel(ctx, ch)
}

func (u *CatalogUsecase) SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Item, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Toggling to the current state must not disturb anything.
	if item.IsFavorite == favorite {
		return item, nil
	}

	if favorite {
		count, err := u.items.CountFavorites(ctx)
		if err != nil {
			return nil, err
		}
		if count >= u.maxFavorites {
			return nil, fmt.Errorf("%w: at most %d favorites allowed", domain.ErrCapacityExceeded, u.maxFavorites)
		}
	}

	if err := u.items.SetFavorite(ctx, id, favorite); err != nil {
		return nil, err
	}

	zlog.Logger.Info().Str("item_id", id).Bool("favorite", favorite).Msg("favorite toggled")
	return u.items.FindByID(ctx, id)
}

func (u *CatalogUsecase) SetFeatured(ctx context.Context, id string, ch domain.Channel, featured bool) (*domain.Item, error) {
	if _, err := domain.ParseChannel(string(ch)); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.IsFeatured(ch) == featured {
		return item, nil
	}

	if featured {
		count, err := u.items.CountFeatured(ctx, ch)
		if err != nil {
			return nil, err
		}
		if count >= u.maxFeaturedPerChannel {
			return nil, fmt.Errorf("%w: at most %d featured items allowed per channel", domain.ErrCapacityExceeded, u.maxFeaturedPerChannel)
		}

		// Insert at head: every active order in the channel moves down
		// one position, the new item takes position 1.
		if err := u.items.ShiftFeaturedOrders(ctx, ch); err != nil {
			return nil, err
		}
		head := 1
		if err := u.items.SetFeaturedOrder(ctx, id, ch, true, &head); err != nil {
			return nil, err
		}
	} else {
		// Deactivation clears only this item's slot; remaining orders
		// keep their values, gaps included.
		if err := u.items.SetFeaturedOrder(ctx, id, ch, false, nil); err != nil {
			return nil, err
		}
	}

	zlog.Logger.Info().
		Str("item_id", id).
		Str("channel", string(ch)).
		Bool("featured", featured).
		Msg("featured toggled")

	return u.items.FindByID(ctx, id)
}

// ReorderItems writes the new manual order values row by row. The
// updates are not transactional: on the first failure the remaining
// rows are left untouched and the caller is expected to revert its
// local view.
func (u *CatalogUsecase) ReorderItems(ctx context.Context, updates []domain.OrderUpdate) error {
	for _, upd := range updates {
		if err := u.items.UpdateOrder(ctx, upd.ID, upd.Order); err != nil {
			zlog.Logger.Error().Err(err).Str("item_id", upd.ID).Msg("item reorder failed midway")
			return err
		}
	}
	return nil
}

func (u *CatalogUsecase) ItemCategoryIDs(ctx context.Context, itemID string) ([]string, error) {
	return u.items.CategoryIDs(ctx, itemID)
}
