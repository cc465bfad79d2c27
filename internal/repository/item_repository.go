package repository

import (
	"database/sql"
	"fmt"
	"time"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
)

// ItemFilter narrows an available-items listing.
type ItemFilter struct {
	Search   string // Case-insensitive substring match on name/description
	Category string
}

// ItemRepository defines the interface for item database operations
type ItemRepository interface {
	Create(name, description string, quantity int, category *string, useByDate time.Time, donorID string) (*entities.Item, error)
	FindByID(id string) (*entities.Item, error)
	FindAvailable(filter ItemFilter, page, limit int) ([]*entities.Item, int, error)
	FindByDonorID(donorID string) ([]*entities.Item, error)
	FindByPantryID(pantryID string) ([]*entities.Item, error)
	FindAll() ([]*entities.Item, error)
	Claim(id, pantryID string) error
	Update(id, name, description string, quantity int, category *string, useByDate time.Time) error
	Delete(id string) error
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, description, quantity, category, use_by_date, donor_id, status, pantry_id, created_at`

func scanItem(row *sql.Row) (*entities.Item, error) {
	var item entities.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Quantity,
		&item.Category,
		&item.UseByDate,
		&item.DonorID,
		&item.Status,
		&item.PantryID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*entities.Item, error) {
	defer rows.Close()

	var items []*entities.Item
	for rows.Next() {
		var item entities.Item
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Quantity,
			&item.Category,
			&item.UseByDate,
			&item.DonorID,
			&item.Status,
			&item.PantryID,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Create inserts a new item with status available
func (r *itemRepository) Create(name, description string, quantity int, category *string, useByDate time.Time, donorID string) (*entities.Item, error) {
	query := `
		INSERT INTO items (name, description, quantity, category, use_by_date, donor_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'available')
		RETURNING ` + itemColumns

	item, err := scanItem(r.db.QueryRow(query, name, description, quantity, category, useByDate, donorID))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// FindByID finds an item by ID (UUID)
func (r *itemRepository) FindByID(id string) (*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

// FindAvailable lists unexpired available items in insertion order,
// paginated 1-indexed, and returns the total count for page math.
func (r *itemRepository) FindAvailable(filter ItemFilter, page, limit int) ([]*entities.Item, int, error) {
	where := `
		WHERE status = 'available'
		AND use_by_date >= CURRENT_DATE
		AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		AND ($2 = '' OR category = $2)
	`

	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM items`+where, filter.Search, filter.Category).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	offset := (page - 1) * limit
	query := `SELECT ` + itemColumns + ` FROM items` + where + `
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(query, filter.Search, filter.Category, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindByDonorID returns every item listed by a donor
func (r *itemRepository) FindByDonorID(donorID string) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE donor_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(query, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donor items: %w", err)
	}

	return scanItems(rows)
}

// FindByPantryID returns every item claimed by a pantry user
func (r *itemRepository) FindByPantryID(pantryID string) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE pantry_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(query, pantryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}

	return scanItems(rows)
}

// FindAll returns every item regardless of status
func (r *itemRepository) FindAll() ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at, id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return scanItems(rows)
}

// Claim transitions an item to claimed and attaches the pantry. The
// status check lives in the WHERE clause so the transition is a single
// atomic conditional update: under concurrent claims exactly one caller
// sees a row affected, everyone else gets not-found.
func (r *itemRepository) Claim(id, pantryID string) error {
	query := `
		UPDATE items
		SET status = 'claimed', pantry_id = $2
		WHERE id = $1 AND status = 'available'
	`

	result, err := r.db.Exec(query, id, pantryID)
	if err != nil {
		return fmt.Errorf("failed to claim item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to claim item: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item not available: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Update edits an item's listing fields
func (r *itemRepository) Update(id, name, description string, quantity int, category *string, useByDate time.Time) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, quantity = $4, category = $5, use_by_date = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, name, description, quantity, category, useByDate)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item: %w", apperrors.ErrNotFound)
	}

	return nil
}

// Delete removes an item
func (r *itemRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("item: %w", apperrors.ErrNotFound)
	}

	return nil
}
