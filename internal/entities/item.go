package entities

import "time"

// ItemStatus is the lifecycle state of a listed item. Transitions only
// move forward: available -> selected|claimed.
type ItemStatus string

const (
	StatusAvailable ItemStatus = "available"
	StatusSelected  ItemStatus = "selected"
	StatusClaimed   ItemStatus = "claimed"
)

// Item represents a surplus food item listed by a donor
type Item struct {
	ID          string     `json:"id"` // UUID
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Quantity    int        `json:"quantity"`
	Category    *string    `json:"category,omitempty"`
	UseByDate   time.Time  `json:"use_by_date"`
	DonorID     string     `json:"donor_id"`
	Status      ItemStatus `json:"status"`
	PantryID    *string    `json:"pantry_id,omitempty"` // Set once a pantry claims the item
	CreatedAt   time.Time  `json:"created_at"`
}
