package domain

import "sort"

// featuredOrderSentinel stands in for an unset featured order when the
// smaller of the two channel orders is selected.
const featuredOrderSentinel = 999

// rankKey is the composite sort key that fully determines the public
// catalog order. Items compare field by field, earlier fields first:
//
//	group        0 = favorite, 1 = featured in either channel, 2 = rest
//	manualOrder  ascending (ignored inside the featured group)
//	featuredPos  min(order haken, order borduren), 999 when unset,
//	             ascending (only meaningful inside the featured group)
//	createdUnix  descending (newest first)
//	id           ascending, final deterministic tie break
type rankKey struct {
	group       int
	manualOrder int
	featuredPos int
	createdUnix int64
	id          string
}

func keyOf(i *Item) rankKey {
	k := rankKey{
		group:       2,
		manualOrder: i.ManualOrder,
		featuredPos: featuredOrderSentinel,
		createdUnix: i.CreatedAt.UnixNano(),
		id:          i.ID,
	}
	switch {
	case i.IsFavorite:
		k.group = 0
	case i.FeaturedHaken || i.FeaturedBorduren:
		k.group = 1
		k.manualOrder = 0 // featured group orders by featured position only
		if i.FeaturedOrderHaken != nil && *i.FeaturedOrderHaken < k.featuredPos {
			k.featuredPos = *i.FeaturedOrderHaken
		}
		if i.FeaturedOrderBorduren != nil && *i.FeaturedOrderBorduren < k.featuredPos {
			k.featuredPos = *i.FeaturedOrderBorduren
		}
	}
	return k
}

func (a rankKey) less(b rankKey) bool {
	if a.group != b.group {
		return a.group < b.group
	}
	if a.manualOrder != b.manualOrder {
		return a.manualOrder < b.manualOrder
	}
	if a.featuredPos != b.featuredPos {
		return a.featuredPos < b.featuredPos
	}
	if a.createdUnix != b.createdUnix {
		return a.createdUnix > b.createdUnix
	}
	return a.id < b.id
}

// Rank returns the items in the deterministic catalog order used by the
// public listings and the admin dashboard. The input slice is not
// modified; the result is insensitive to the input permutation.
func Rank(items []*Item) []*Item {
	ranked := make([]*Item, len(items))
	copy(ranked, items)
	sort.Slice(ranked, func(a, b int) bool {
		return keyOf(ranked[a]).less(keyOf(ranked[b]))
	})
	return ranked
}
