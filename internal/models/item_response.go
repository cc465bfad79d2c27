package models

import "foodshare-be/internal/entities"

// ItemListResponse represents a paginated page of available items
type ItemListResponse struct {
	Items      []*entities.Item `json:"items"`
	Page       int              `json:"page"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

// ProfileResponse represents a user's profile plus their item history
type ProfileResponse struct {
	User           *entities.User   `json:"user"`
	ItemsAvailable []*entities.Item `json:"items_available,omitempty"` // Donor's listings
	ItemsClaimed   []*entities.Item `json:"items_claimed,omitempty"`   // Pantry's claims
}

// DashboardResponse represents the admin dashboard payload
type DashboardResponse struct {
	Users []*entities.User `json:"users"`
	Items []*entities.Item `json:"items"`
}
