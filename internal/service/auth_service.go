package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
	"foodshare-be/internal/mailer"
	"foodshare-be/internal/models"
	"foodshare-be/internal/queue"
	"foodshare-be/internal/repository"
	"foodshare-be/internal/token"
)

// AuthService defines the interface for registration and credential
// lifecycle business logic
type AuthService interface {
	Register(req *models.RegisterRequest) (*entities.User, error)
	Login(req *models.LoginRequest) (*entities.User, error)
	VerifyEmail(verificationToken string) error
	RequestPasswordReset(email string) error
	ValidateResetToken(resetToken string) error
	ResetPassword(resetToken, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	publisher queue.TaskPublisher
	baseURL   string
	resetTTL  time.Duration
	logger    *slog.Logger
	ctx       context.Context
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, publisher queue.TaskPublisher, baseURL string, resetTTL time.Duration, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		publisher: publisher,
		baseURL:   baseURL,
		resetTTL:  resetTTL,
		logger:    logger,
		ctx:       context.Background(),
	}
}

// NormalizeEmail lowercases and trims an email address so uniqueness
// checks and lookups agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new unverified user account and queues the
// verification email
func (s *authService) Register(req *models.RegisterRequest) (*entities.User, error) {
	role, err := entities.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperrors.ErrValidation)
	}

	email := NormalizeEmail(req.Email)

	// Check if user already exists. The unique index on email backs
	// this up when two registrations race.
	existingUser, err := s.userRepo.FindByEmail(email)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("user with email %s: %w", email, apperrors.ErrConflict)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := token.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	user, err := s.userRepo.Create(req.Name, email, string(hashedPassword), role, verificationToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best-effort: a lost verification email never fails registration.
	task := mailer.VerificationEmail(user.Email, s.baseURL, verificationToken)
	if err := s.publisher.PublishEmailTask(s.ctx, task); err != nil {
		s.logger.Error("failed to queue verification email", "email", user.Email, "error", err)
	}

	return user, nil
}

// Login verifies credentials. An unknown email and a wrong password
// return the same error so accounts cannot be enumerated.
func (s *authService) Login(req *models.LoginRequest) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAuth
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrAuth
	}

	return user, nil
}

// VerifyEmail consumes a verification token
func (s *authService) VerifyEmail(verificationToken string) error {
	return s.userRepo.VerifyEmail(verificationToken)
}

// RequestPasswordReset stores a single-use reset token and queues the
// reset email. It behaves identically whether or not the email has an
// account, so the endpoint cannot be used to probe for registrations.
func (s *authService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	resetToken, err := token.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(user.ID, resetToken, time.Now().Add(s.resetTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	task := mailer.ResetEmail(user.Email, s.baseURL, resetToken)
	if err := s.publisher.PublishEmailTask(s.ctx, task); err != nil {
		s.logger.Error("failed to queue reset email", "email", user.Email, "error", err)
	}

	return nil
}

// ValidateResetToken checks that a reset token resolves and has not
// expired, without consuming it. Backs the reset form.
func (s *authService) ValidateResetToken(resetToken string) error {
	user, err := s.userRepo.FindByResetToken(resetToken)
	if err != nil {
		return err
	}

	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return fmt.Errorf("reset token: %w", apperrors.ErrExpired)
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password.
// The repository clears the token in the same update, so a second call
// with the same token fails with not-found.
func (s *authService) ResetPassword(resetToken, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(resetToken)
	if err != nil {
		return err
	}

	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return fmt.Errorf("reset token: %w", apperrors.ErrExpired)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.ResetPassword(resetToken, string(hashedPassword))
}
