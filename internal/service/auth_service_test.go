package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
	"foodshare-be/internal/logger"
	"foodshare-be/internal/models"
	"foodshare-be/internal/repository"
)

// fakeUserRepo implements the user storage contract in memory,
// including the single-use token semantics of the SQL layer.
type fakeUserRepo struct {
	repository.UserRepository
	mu    sync.Mutex
	seq   int
	byID  map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(name, email, passwordHash string, role entities.Role, verificationToken string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email == email {
			return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrConflict)
		}
	}

	f.seq++
	tok := verificationToken
	user := &entities.User{
		ID:                fmt.Sprintf("user-%d", f.seq),
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
		VerificationToken: &tok,
		CreatedAt:         time.Now(),
	}
	f.byID[user.ID] = user

	c := *user
	return &c, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) VerifyEmail(verificationToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.VerificationToken != nil && *u.VerificationToken == verificationToken {
			u.EmailVerified = true
			u.VerificationToken = nil
			return nil
		}
	}
	return fmt.Errorf("verification token: %w", apperrors.ErrNotFound)
}

func (f *fakeUserRepo) SetResetToken(id, resetToken string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	u.ResetToken = &resetToken
	u.ResetTokenExpires = &expiresAt
	return nil
}

func (f *fakeUserRepo) FindByResetToken(resetToken string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == resetToken {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("reset token: %w", apperrors.ErrNotFound)
}

func (f *fakeUserRepo) ResetPassword(resetToken, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.ResetToken != nil && *u.ResetToken == resetToken {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpires = nil
			return nil
		}
	}
	return fmt.Errorf("reset token: %w", apperrors.ErrNotFound)
}

func newAuthServiceForTest() (AuthService, *fakeUserRepo, *fakePublisher) {
	repo := newFakeUserRepo()
	publisher := &fakePublisher{}
	svc := NewAuthService(repo, publisher, "http://localhost:8080", time.Hour, logger.New("error"))
	return svc, repo, publisher
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter22",
		Role:     "donor",
	}
}

func TestAuthServiceRegisterThenLogin(t *testing.T) {
	svc, _, publisher := newAuthServiceForTest()

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entities.RoleDonor, user.Role)
	assert.False(t, user.EmailVerified)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "plaintext must never be stored")

	// One verification email queued, carrying the token link.
	tasks := publisher.published()
	require.Len(t, tasks, 1)
	assert.Equal(t, "dana@example.com", tasks[0].To)
	require.NotNil(t, user.VerificationToken)
	assert.Contains(t, tasks[0].Body, *user.VerificationToken)

	got, err := svc.Login(&models.LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthServiceRegisterNormalizesEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	req := registerRequest()
	req.Email = "  Dana@Example.COM "
	user, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)

	_, err = svc.Login(&models.LoginRequest{Email: "DANA@example.com", Password: "hunter22"})
	assert.NoError(t, err)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthServiceRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	req := registerRequest()
	req.Role = "superuser"
	_, err := svc.Register(req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// A wrong password and an unknown email must be indistinguishable to
// the caller.
func TestAuthServiceLoginNonEnumeration(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(&models.LoginRequest{Email: "dana@example.com", Password: "wrong"})
	_, unknownEmail := svc.Login(&models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, apperrors.ErrAuth)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrAuth)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthServiceVerifyEmailSingleUse(t *testing.T) {
	svc, repo, _ := newAuthServiceForTest()

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	tok := *user.VerificationToken

	require.NoError(t, svc.VerifyEmail(tok))

	verified, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Nil(t, verified.VerificationToken)

	// The token was cleared on first use.
	err = svc.VerifyEmail(tok)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthServicePasswordResetFlow(t *testing.T) {
	svc, repo, publisher := newAuthServiceForTest()

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset("dana@example.com"))

	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	tok := *stored.ResetToken

	// Registration email plus the reset email.
	tasks := publisher.published()
	require.Len(t, tasks, 2)
	assert.Contains(t, tasks[1].Body, tok)

	require.NoError(t, svc.ValidateResetToken(tok))
	require.NoError(t, svc.ResetPassword(tok, "newpassword"))

	_, err = svc.Login(&models.LoginRequest{Email: "dana@example.com", Password: "newpassword"})
	require.NoError(t, err)
	_, err = svc.Login(&models.LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, apperrors.ErrAuth)

	// Single use: the same token cannot reset twice.
	err = svc.ResetPassword(tok, "anotherpassword")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthServiceResetUnknownEmailIsSilent(t *testing.T) {
	svc, _, publisher := newAuthServiceForTest()

	// No account, no error, no email: the endpoint must not reveal
	// whether an address is registered.
	require.NoError(t, svc.RequestPasswordReset("nobody@example.com"))
	assert.Empty(t, publisher.published())
}

func TestAuthServiceResetExpiredToken(t *testing.T) {
	svc, repo, _ := newAuthServiceForTest()

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, repo.SetResetToken(user.ID, "stale-token", expired))

	assert.ErrorIs(t, svc.ValidateResetToken("stale-token"), apperrors.ErrExpired)
	assert.ErrorIs(t, svc.ResetPassword("stale-token", "newpassword"), apperrors.ErrExpired)
}
