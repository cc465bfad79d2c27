package service

import (
	"foodshare-be/internal/entities"
	"foodshare-be/internal/models"
	"foodshare-be/internal/repository"
)

// PantryService defines the interface for pantry contact-record logic
type PantryService interface {
	Create(req *models.PantryRequest) (*entities.Pantry, error)
	Get(id string) (*entities.Pantry, error)
	List() ([]*entities.Pantry, error)
	Update(id string, req *models.PantryRequest) error
}

type pantryService struct {
	pantryRepo repository.PantryRepository
}

// NewPantryService creates a new pantry service
func NewPantryService(pantryRepo repository.PantryRepository) PantryService {
	return &pantryService{pantryRepo: pantryRepo}
}

func (s *pantryService) Create(req *models.PantryRequest) (*entities.Pantry, error) {
	return s.pantryRepo.Create(req.Name, req.Address, req.Phone, NormalizeEmail(req.Email))
}

func (s *pantryService) Get(id string) (*entities.Pantry, error) {
	return s.pantryRepo.FindByID(id)
}

func (s *pantryService) List() ([]*entities.Pantry, error) {
	return s.pantryRepo.FindAll()
}

func (s *pantryService) Update(id string, req *models.PantryRequest) error {
	return s.pantryRepo.Update(id, req.Name, req.Address, req.Phone, NormalizeEmail(req.Email))
}
