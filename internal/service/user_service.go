package service

import (
	"fmt"

	"foodshare-be/internal/entities"
	"foodshare-be/internal/models"
	"foodshare-be/internal/repository"
)

// UserService defines the interface for profile business logic
type UserService interface {
	GetProfile(userID string) (*models.ProfileResponse, error)
	UpdateProfile(userID string, req *models.UpdateProfileRequest) error
}

type userService struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, itemRepo repository.ItemRepository) UserService {
	return &userService{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

// GetProfile returns a user's profile along with their item history:
// listings for donors, claims for pantry users.
func (s *userService) GetProfile(userID string) (*models.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	resp := &models.ProfileResponse{User: user}

	switch user.Role {
	case entities.RoleDonor:
		resp.ItemsAvailable, err = s.itemRepo.FindByDonorID(userID)
	case entities.RolePantry:
		resp.ItemsClaimed, err = s.itemRepo.FindByPantryID(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile items: %w", err)
	}

	return resp, nil
}

// UpdateProfile edits a user's own name and email
func (s *userService) UpdateProfile(userID string, req *models.UpdateProfileRequest) error {
	return s.userRepo.UpdateProfile(userID, req.Name, NormalizeEmail(req.Email))
}
