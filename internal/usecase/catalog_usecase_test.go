package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolhaven/atelier/internal/domain"
)

// fakeItemRepo is an in-memory ItemRepository for exercising the toggle
// and reorder flows without a database.
type fakeItemRepo struct {
	items map[string]*domain.Item
}

func newFakeItemRepo(items ...*domain.Item) *fakeItemRepo {
	repo := &fakeItemRepo{items: make(map[string]*domain.Item)}
	for _, it := range items {
		copied := *it
		repo.items[it.ID] = &copied
	}
	return repo
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item, _ []string) error {
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *domain.Item, _ []string) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]*domain.Item, error) {
	out := make([]*domain.Item, 0, len(r.items))
	for _, it := range r.items {
		copied := *it
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeItemRepo) ListByChannel(_ context.Context, ch domain.Channel) ([]*domain.Item, error) {
	var out []*domain.Item
	for _, it := range r.items {
		if it.IsFeatured(ch) {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) CategoryIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (r *fakeItemRepo) CountFavorites(_ context.Context) (int, error) {
	count := 0
	for _, it := range r.items {
		if it.IsFavorite {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) CountFeatured(_ context.Context, ch domain.Channel) (int, error) {
	count := 0
	for _, it := range r.items {
		if it.IsFeatured(ch) {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) SetFavorite(_ context.Context, id string, favorite bool) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.IsFavorite = favorite
	return nil
}

func (r *fakeItemRepo) SetFeaturedOrder(_ context.Context, id string, ch domain.Channel, featured bool, order *int) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.SetFeatured(ch, featured, order)
	return nil
}

func (r *fakeItemRepo) ShiftFeaturedOrders(_ context.Context, ch domain.Channel) error {
	for _, it := range r.items {
		if ord := it.FeaturedOrder(ch); ord != nil {
			shifted := *ord + 1
			it.SetFeatured(ch, true, &shifted)
		}
	}
	return nil
}

func (r *fakeItemRepo) UpdateOrder(_ context.Context, id string, order int) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.ManualOrder = order
	return nil
}

func featuredItem(id string, ch domain.Channel, order int) *domain.Item {
	it := &domain.Item{ID: id, Title: "item " + id, CreatedAt: time.Now()}
	it.SetFeatured(ch, true, &order)
	return it
}

func TestSetFeatured_InsertAtHeadShiftsExisting(t *testing.T) {
	repo := newFakeItemRepo(
		featuredItem("x", domain.ChannelHaken, 1),
		featuredItem("y", domain.ChannelHaken, 2),
		&domain.Item{ID: "z", Title: "item z"},
	)
	uc := NewCatalogUsecase(repo, 3, 10)

	z, err := uc.SetFeatured(context.Background(), "z", domain.ChannelHaken, true)
	require.NoError(t, err)

	require.NotNil(t, z.FeaturedOrderHaken)
	assert.Equal(t, 1, *z.FeaturedOrderHaken)

	x, _ := repo.FindByID(context.Background(), "x")
	y, _ := repo.FindByID(context.Background(), "y")
	assert.Equal(t, 2, *x.FeaturedOrderHaken)
	assert.Equal(t, 3, *y.FeaturedOrderHaken)
}

func TestSetFeatured_ChannelCapEnforced(t *testing.T) {
	items := make([]*domain.Item, 0, 11)
	for i := 0; i < 10; i++ {
		items = append(items, featuredItem(string(rune('a'+i)), domain.ChannelHaken, i+1))
	}
	items = append(items, &domain.Item{ID: "new", Title: "new"})

	repo := newFakeItemRepo(items...)
	uc := NewCatalogUsecase(repo, 3, 10)

	_, err := uc.SetFeatured(context.Background(), "new", domain.ChannelHaken, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestSetFeatured_CapsAreChannelIndependent(t *testing.T) {
	items := make([]*domain.Item, 0, 11)
	for i := 0; i < 10; i++ {
		items = append(items, featuredItem(string(rune('a'+i)), domain.ChannelHaken, i+1))
	}
	items = append(items, &domain.Item{ID: "new", Title: "new"})

	repo := newFakeItemRepo(items...)
	uc := NewCatalogUsecase(repo, 3, 10)

	// The haken channel is full but borduren still has room.
	item, err := uc.SetFeatured(context.Background(), "new", domain.ChannelBorduren, true)
	require.NoError(t, err)
	assert.Equal(t, 1, *item.FeaturedOrderBorduren)
}

func TestSetFeatured_DeactivateLeavesGaps(t *testing.T) {
	repo := newFakeItemRepo(
		featuredItem("x", domain.ChannelHaken, 1),
		featuredItem("y", domain.ChannelHaken, 2),
		featuredItem("z", domain.ChannelHaken, 3),
	)
	uc := NewCatalogUsecase(repo, 3, 10)

	y, err := uc.SetFeatured(context.Background(), "y", domain.ChannelHaken, false)
	require.NoError(t, err)
	assert.False(t, y.FeaturedHaken)
	assert.Nil(t, y.FeaturedOrderHaken)

	// Other orders are not renumbered; the gap at 2 remains.
	x, _ := repo.FindByID(context.Background(), "x")
	z, _ := repo.FindByID(context.Background(), "z")
	assert.Equal(t, 1, *x.FeaturedOrderHaken)
	assert.Equal(t, 3, *z.FeaturedOrderHaken)
}

func TestSetFeatured_NoOpKeepsOrder(t *testing.T) {
	repo := newFakeItemRepo(
		featuredItem("x", domain.ChannelHaken, 4),
	)
	uc := NewCatalogUsecase(repo, 3, 10)

	x, err := uc.SetFeatured(context.Background(), "x", domain.ChannelHaken, true)
	require.NoError(t, err)
	assert.Equal(t, 4, *x.FeaturedOrderHaken)
}

func TestSetFavorite_GlobalCapEnforced(t *testing.T) {
	repo := newFakeItemRepo(
		&domain.Item{ID: "a", IsFavorite: true},
		&domain.Item{ID: "b", IsFavorite: true},
		&domain.Item{ID: "c", IsFavorite: true},
		&domain.Item{ID: "d"},
	)
	uc := NewCatalogUsecase(repo, 3, 10)

	_, err := uc.SetFavorite(context.Background(), "d", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// A no-op toggle on an existing favorite is fine even at the cap.
	a, err := uc.SetFavorite(context.Background(), "a", true)
	require.NoError(t, err)
	assert.True(t, a.IsFavorite)
}

func TestReorderItems_StopsOnFirstFailure(t *testing.T) {
	repo := newFakeItemRepo(
		&domain.Item{ID: "a"},
		&domain.Item{ID: "b"},
	)
	uc := NewCatalogUsecase(repo, 3, 10)

	err := uc.ReorderItems(context.Background(), []domain.OrderUpdate{
		{ID: "a", Order: 1},
		{ID: "missing", Order: 2},
		{ID: "b", Order: 3},
	})
	require.Error(t, err)

	// The first update went through, the one after the failure did not.
	a, _ := repo.FindByID(context.Background(), "a")
	b, _ := repo.FindByID(context.Background(), "b")
	assert.Equal(t, 1, a.ManualOrder)
	assert.Equal(t, 0, b.ManualOrder)
}

func TestSetFeatured_InvalidChannel(t *testing.T) {
	repo := newFakeItemRepo(&domain.Item{ID: "a"})
	uc := NewCatalogUsecase(repo, 3, 10)

	_, err := uc.SetFeatured(context.Background(), "a", domain.Channel("breien"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}
