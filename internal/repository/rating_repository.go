package repository

import (
	"database/sql"
	"fmt"

	"foodshare-be/internal/entities"
)

// RatingRepository defines the interface for rating database operations
type RatingRepository interface {
	Create(itemID, userID string, rating int, comment string) (*entities.Rating, error)
	FindByItemID(itemID string) ([]*entities.Rating, error)
}

type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts a new rating
func (r *ratingRepository) Create(itemID, userID string, rating int, comment string) (*entities.Rating, error) {
	query := `
		INSERT INTO ratings (item_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, item_id, user_id, rating, comment, created_at
	`

	var rec entities.Rating
	err := r.db.QueryRow(query, itemID, userID, rating, comment).Scan(
		&rec.ID,
		&rec.ItemID,
		&rec.UserID,
		&rec.Rating,
		&rec.Comment,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	return &rec, nil
}

// FindByItemID returns every rating for an item
func (r *ratingRepository) FindByItemID(itemID string) ([]*entities.Rating, error) {
	query := `
		SELECT id, item_id, user_id, rating, comment, created_at
		FROM ratings
		WHERE item_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*entities.Rating
	for rows.Next() {
		var rec entities.Rating
		err := rows.Scan(
			&rec.ID,
			&rec.ItemID,
			&rec.UserID,
			&rec.Rating,
			&rec.Comment,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rec)
	}

	return ratings, rows.Err()
}
