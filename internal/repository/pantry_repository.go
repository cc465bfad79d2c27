package repository

import (
	"database/sql"
	"fmt"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
)

// PantryRepository defines the interface for pantry contact-record operations
type PantryRepository interface {
	Create(name, address, phone, email string) (*entities.Pantry, error)
	FindByID(id string) (*entities.Pantry, error)
	FindAll() ([]*entities.Pantry, error)
	Update(id, name, address, phone, email string) error
}

type pantryRepository struct {
	db *sql.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *sql.DB) PantryRepository {
	return &pantryRepository{db: db}
}

// Create inserts a new pantry contact record
func (r *pantryRepository) Create(name, address, phone, email string) (*entities.Pantry, error) {
	query := `
		INSERT INTO pantries (name, address, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, phone, email, created_at
	`

	var pantry entities.Pantry
	err := r.db.QueryRow(query, name, address, phone, email).Scan(
		&pantry.ID,
		&pantry.Name,
		&pantry.Address,
		&pantry.Phone,
		&pantry.Email,
		&pantry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pantry: %w", err)
	}

	return &pantry, nil
}

// FindByID finds a pantry by ID (UUID)
func (r *pantryRepository) FindByID(id string) (*entities.Pantry, error) {
	query := `SELECT id, name, address, phone, email, created_at FROM pantries WHERE id = $1`

	var pantry entities.Pantry
	err := r.db.QueryRow(query, id).Scan(
		&pantry.ID,
		&pantry.Name,
		&pantry.Address,
		&pantry.Phone,
		&pantry.Email,
		&pantry.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pantry: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pantry: %w", err)
	}

	return &pantry, nil
}

// FindAll returns every pantry contact record
func (r *pantryRepository) FindAll() ([]*entities.Pantry, error) {
	query := `SELECT id, name, address, phone, email, created_at FROM pantries ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantries: %w", err)
	}
	defer rows.Close()

	var pantries []*entities.Pantry
	for rows.Next() {
		var pantry entities.Pantry
		err := rows.Scan(
			&pantry.ID,
			&pantry.Name,
			&pantry.Address,
			&pantry.Phone,
			&pantry.Email,
			&pantry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pantry: %w", err)
		}
		pantries = append(pantries, &pantry)
	}

	return pantries, rows.Err()
}

// Update edits a pantry contact record
func (r *pantryRepository) Update(id, name, address, phone, email string) error {
	query := `
		UPDATE pantries
		SET name = $2, address = $3, phone = $4, email = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, name, address, phone, email)
	if err != nil {
		return fmt.Errorf("failed to update pantry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update pantry: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pantry: %w", apperrors.ErrNotFound)
	}

	return nil
}
