package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func item(id string, mutate ...func(*Item)) *Item {
	it := &Item{
		ID:        id,
		Title:     "item " + id,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(it)
	}
	return it
}

func ids(items []*Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestRank_FavoritesBeforeFeatured(t *testing.T) {
	a := item("a", func(i *Item) { i.IsFavorite = true; i.ManualOrder = 5 })
	b := item("b", func(i *Item) {
		i.FeaturedHaken = true
		i.FeaturedOrderHaken = intPtr(1)
		i.ManualOrder = 1
	})

	ranked := Rank([]*Item{b, a})
	assert.Equal(t, []string{"a", "b"}, ids(ranked))
}

func TestRank_FavoritesByManualOrderThenNewest(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	a := item("a", func(i *Item) { i.IsFavorite = true; i.ManualOrder = 2 })
	b := item("b", func(i *Item) { i.IsFavorite = true; i.ManualOrder = 1; i.CreatedAt = older })
	c := item("c", func(i *Item) { i.IsFavorite = true; i.ManualOrder = 1; i.CreatedAt = newer })

	ranked := Rank([]*Item{a, b, c})
	assert.Equal(t, []string{"c", "b", "a"}, ids(ranked))
}

func TestRank_FeaturedByMinChannelOrder(t *testing.T) {
	a := item("a", func(i *Item) {
		i.FeaturedBorduren = true
		i.FeaturedOrderBorduren = intPtr(3)
	})
	b := item("b", func(i *Item) {
		i.FeaturedHaken = true
		i.FeaturedOrderHaken = intPtr(5)
		i.FeaturedBorduren = true
		i.FeaturedOrderBorduren = intPtr(2)
	})
	// Flag set without an order falls back to the 999 sentinel.
	c := item("c", func(i *Item) { i.FeaturedHaken = true })

	ranked := Rank([]*Item{c, a, b})
	assert.Equal(t, []string{"b", "a", "c"}, ids(ranked))
}

func TestRank_RemainderByManualOrderThenNewest(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	a := item("a", func(i *Item) { i.ManualOrder = 1; i.CreatedAt = older })
	b := item("b", func(i *Item) { i.ManualOrder = 0; i.CreatedAt = older })
	c := item("c", func(i *Item) { i.ManualOrder = 0; i.CreatedAt = newer })

	ranked := Rank([]*Item{a, b, c})
	assert.Equal(t, []string{"c", "b", "a"}, ids(ranked))
}

func TestRank_EndToEndScenario(t *testing.T) {
	t1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	one := item("1", func(i *Item) {
		i.FeaturedHaken = true
		i.FeaturedOrderHaken = intPtr(2)
	})
	two := item("2", func(i *Item) {
		i.IsFavorite = true
		i.ManualOrder = 0
		i.CreatedAt = t1
	})
	three := item("3", func(i *Item) {
		i.ManualOrder = 0
		i.CreatedAt = t2
	})

	ranked := Rank([]*Item{one, two, three})
	assert.Equal(t, []string{"2", "1", "3"}, ids(ranked))
}

func TestRank_OrderInsensitive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	base := []*Item{
		item("a", func(i *Item) { i.IsFavorite = true; i.ManualOrder = 3 }),
		item("b", func(i *Item) { i.IsFavorite = true; i.ManualOrder = 3 }),
		item("c", func(i *Item) { i.FeaturedHaken = true; i.FeaturedOrderHaken = intPtr(1) }),
		item("d", func(i *Item) { i.FeaturedBorduren = true; i.FeaturedOrderBorduren = intPtr(1) }),
		item("e", func(i *Item) { i.ManualOrder = 7 }),
		item("f", func(i *Item) { i.ManualOrder = 7 }),
		item("g"),
	}

	want := ids(Rank(base))
	require.Len(t, want, len(base))

	for trial := 0; trial < 50; trial++ {
		shuffled := make([]*Item, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		assert.Equal(t, want, ids(Rank(shuffled)), "trial %d", trial)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	a := item("a")
	b := item("b", func(i *Item) { i.IsFavorite = true })
	in := []*Item{a, b}

	_ = Rank(in)
	assert.Equal(t, []string{"a", "b"}, ids(in))
}
