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

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "role", "email_verified",
		"verification_token", "reset_token", "reset_token_expires",
		"created_at", "updated_at",
	})
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := userRows().AddRow(
		"user-id", "Dana", "dana@example.com", "hash", "donor", false,
		"verif-token", nil, nil, now, now,
	)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Dana", "dana@example.com", "hash", entities.RoleDonor, "verif-token").
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	user, err := repo.Create("Dana", "dana@example.com", "hash", entities.RoleDonor, "verif-token")
	require.NoError(t, err)
	assert.Equal(t, "user-id", user.ID)
	assert.Equal(t, entities.RoleDonor, user.Role)
	assert.False(t, user.EmailVerified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnRows(userRows())

	repo := NewUserRepository(db)
	_, err = repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Verification clears the token in the same update; a consumed or
// unknown token affects zero rows.
func TestUserRepositoryVerifyEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("verif-token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs("verif-token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)
	require.NoError(t, repo.VerifyEmail("verif-token"))
	assert.ErrorIs(t, repo.VerifyEmail("verif-token"), apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryResetPasswordConsumesToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("reset-token", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs("reset-token", "another-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)
	require.NoError(t, repo.ResetPassword("reset-token", "new-hash"))
	assert.ErrorIs(t, repo.ResetPassword("reset-token", "another-hash"), apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
