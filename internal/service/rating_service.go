package service

import (
	"foodshare-be/internal/entities"
	"foodshare-be/internal/models"
	"foodshare-be/internal/repository"
)

// RatingService defines the interface for item rating business logic
type RatingService interface {
	Rate(itemID, userID string, req *models.RateItemRequest) (*entities.Rating, error)
	ListByItem(itemID string) ([]*entities.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	itemRepo   repository.ItemRepository
}

// NewRatingService creates a new rating service
func NewRatingService(ratingRepo repository.RatingRepository, itemRepo repository.ItemRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		itemRepo:   itemRepo,
	}
}

// Rate records a rating for an item. Any authenticated user may rate;
// nothing restricts raters to the pantry that received the item, and a
// user may rate the same item more than once.
func (s *ratingService) Rate(itemID, userID string, req *models.RateItemRequest) (*entities.Rating, error) {
	// The item must exist; the reference is weak, resolved at write time.
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		return nil, err
	}

	return s.ratingRepo.Create(itemID, userID, req.Rating, req.Comment)
}

// ListByItem returns every rating for an item
func (s *ratingService) ListByItem(itemID string) ([]*entities.Rating, error) {
	return s.ratingRepo.FindByItemID(itemID)
}
