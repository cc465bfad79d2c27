package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
)

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "quantity", "category", "use_by_date",
		"donor_id", "status", "pantry_id", "created_at",
	})
}

func TestItemRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	useBy := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := itemRows().AddRow(
		"item-id", "Bread", "Day-old loaves", 5, nil, useBy,
		"donor-id", "available", nil, time.Now(),
	)
	mock.ExpectQuery("INSERT INTO items").
		WithArgs("Bread", "Day-old loaves", 5, nil, useBy, "donor-id").
		WillReturnRows(rows)

	repo := NewItemRepository(db)
	item, err := repo.Create("Bread", "Day-old loaves", 5, nil, useBy, "donor-id")
	require.NoError(t, err)
	assert.Equal(t, "item-id", item.ID)
	assert.Equal(t, entities.StatusAvailable, item.Status)
	assert.Nil(t, item.PantryID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// The claim is a conditional update: the WHERE clause checks the status
// and one affected row means this caller won the transition.
func TestItemRepositoryClaim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE items").
		WithArgs("item-id", "pantry-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewItemRepository(db)
	require.NoError(t, repo.Claim("item-id", "pantry-id"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Zero affected rows means the item was missing or already claimed;
// either way the caller sees not-found, never a silent success.
func TestItemRepositoryClaimAlreadyClaimed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE items").
		WithArgs("item-id", "pantry-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewItemRepository(db)
	err = repo.Claim("item-id", "pantry-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryFindAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM items").
		WithArgs("bread", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	useBy := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := itemRows().AddRow(
		"item-id", "Bread", "Day-old loaves", 5, nil, useBy,
		"donor-id", "available", nil, time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM items").
		WithArgs("bread", "", 10, 10).
		WillReturnRows(rows)

	repo := NewItemRepository(db)
	items, total, err := repo.FindAvailable(ItemFilter{Search: "bread"}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 12, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepositoryDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM items").
		WithArgs("no-such-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewItemRepository(db)
	assert.ErrorIs(t, repo.Delete("no-such-id"), apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
