package domain

import (
	"time"
)

// Channel is one of the two public showcase channels of the site.
type Channel string

const (
	ChannelHaken    Channel = "haken"
	ChannelBorduren Channel = "borduren"
)

func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelHaken, ChannelBorduren:
		return Channel(s), nil
	default:
		return "", ErrInvalidChannel
	}
}

type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Images      []string `json:"images"`

	IsFavorite       bool `json:"is_favorite"`
	FeaturedHaken    bool `json:"featured_haken"`
	FeaturedBorduren bool `json:"featured_borduren"`
	// FeaturedOrder* is non-nil iff the matching Featured* flag is set.
	FeaturedOrderHaken    *int `json:"featured_order_haken,omitempty"`
	FeaturedOrderBorduren *int `json:"featured_order_borduren,omitempty"`
	ManualOrder           int  `json:"manual_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFeatured reports whether the item is featured in the given channel.
func (i *Item) IsFeatured(ch Channel) bool {
	switch ch {
	case ChannelHaken:
		return i.FeaturedHaken
	case ChannelBorduren:
		return i.FeaturedBorduren
	default:
		return false
	}
}

// FeaturedOrder returns the item's order in the given channel, nil when not featured.
func (i *Item) FeaturedOrder(ch Channel) *int {
	switch ch {
	case ChannelHaken:
		return i.FeaturedOrderHaken
	case ChannelBorduren:
		return i.FeaturedOrderBorduren
	default:
		return nil
	}
}

// SetFeatured updates the flag and order for a channel, keeping the
// flag/order invariant intact.
func (i *Item) SetFeatured(ch Channel, featured bool, order *int) {
	if !featured {
		order = nil
	}
	switch ch {
	case ChannelHaken:
		i.FeaturedHaken = featured
		i.FeaturedOrderHaken = order
	case ChannelBorduren:
		i.FeaturedBorduren = featured
		i.FeaturedOrderBorduren = order
	}
	i.UpdatedAt = time.Now()
}
