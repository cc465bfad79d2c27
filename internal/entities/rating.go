package entities

import "time"

// Rating is a user's rating of an item.
type Rating struct {
	ID        string    `json:"id"` // UUID
	ItemID    string    `json:"item_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
