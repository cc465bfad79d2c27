package models

// CreateItemRequest represents the request body for listing a new item.
// UseByDate must be a calendar date in YYYY-MM-DD form.
type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	Category    *string `json:"category,omitempty"`
	UseByDate   string  `json:"use_by_date" binding:"required,datetime=2006-01-02"`
}

// UpdateItemRequest represents the request body for editing an item
type UpdateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	Category    *string `json:"category,omitempty"`
	UseByDate   string  `json:"use_by_date" binding:"required,datetime=2006-01-02"`
}

// RateItemRequest represents the request body for rating an item
type RateItemRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
