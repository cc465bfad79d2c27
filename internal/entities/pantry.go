package entities

import "time"

// Pantry is a pantry contact-information record. It is deliberately not
// linked to pantry-role users; see DESIGN.md.
type Pantry struct {
	ID        string    `json:"id"` // UUID
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
