package domain

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url,omitempty"`
	ManualOrder int       `json:"manual_order"`
	CreatedAt   time.Time `json:"created_at"`
}

type HeadCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url,omitempty"`
	ManualOrder int       `json:"manual_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderUpdate is one element of a bulk drag-and-drop reorder request.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
