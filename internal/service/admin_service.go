package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
	"foodshare-be/internal/models"
	"foodshare-be/internal/repository"
	"foodshare-be/internal/token"
)

// AdminService defines the interface for administrator operations
type AdminService interface {
	CreateUser(req *models.RegisterRequest) (*entities.User, error)
	DeleteUser(userID string) error
	DeleteItem(itemID string) error
	Dashboard() (*models.DashboardResponse, error)
}

type adminService struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo repository.UserRepository, itemRepo repository.ItemRepository) AdminService {
	return &adminService{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

// CreateUser creates an account on a user's behalf. The password is
// hashed the same way as self-registration; no verification email is
// sent, the account still starts unverified.
func (s *adminService) CreateUser(req *models.RegisterRequest) (*entities.User, error) {
	role, err := entities.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperrors.ErrValidation)
	}

	email := NormalizeEmail(req.Email)

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

	return s.userRepo.Create(req.Name, email, string(hashedPassword), role, verificationToken)
}

// DeleteUser removes a user
func (s *adminService) DeleteUser(userID string) error {
	return s.userRepo.Delete(userID)
}

// DeleteItem removes an item
func (s *adminService) DeleteItem(itemID string) error {
	return s.itemRepo.Delete(itemID)
}

// Dashboard returns every user and item for the admin view
func (s *adminService) Dashboard() (*models.DashboardResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAll()
	if err != nil {
		return nil, err
	}

	return &models.DashboardResponse{Users: users, Items: items}, nil
}
