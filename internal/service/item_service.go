package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodshare-be/internal/apperrors"
	"foodshare-be/internal/entities"
	"foodshare-be/internal/mailer"
	"foodshare-be/internal/models"
	"foodshare-be/internal/queue"
	"foodshare-be/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	useByDateLayout  = "2006-01-02"
)

// ItemService defines the interface for the item lifecycle business logic
type ItemService interface {
	Create(donorID string, req *models.CreateItemRequest) (*entities.Item, error)
	Get(id string) (*entities.Item, error)
	List(search, category string, page, limit int) (*models.ItemListResponse, error)
	Claim(itemID, pantryID string) error
	Update(itemID, actorID string, actorRole entities.Role, req *models.UpdateItemRequest) error
	Delete(itemID string) error
	ListByDonor(donorID string) ([]*entities.Item, error)
	ListByPantry(pantryID string) ([]*entities.Item, error)
}

type itemService struct {
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	publisher queue.TaskPublisher
	logger    *slog.Logger
	ctx       context.Context
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, userRepo repository.UserRepository, publisher queue.TaskPublisher, logger *slog.Logger) ItemService {
	return &itemService{
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
		ctx:       context.Background(),
	}
}

func parseItemFields(name, description string, quantity int, useByDate string) (time.Time, error) {
	if strings.TrimSpace(name) == "" {
		return time.Time{}, fmt.Errorf("item name is required: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return time.Time{}, fmt.Errorf("item description is required: %w", apperrors.ErrValidation)
	}
	if quantity < 1 {
		return time.Time{}, fmt.Errorf("quantity must be a positive integer: %w", apperrors.ErrValidation)
	}

	date, err := time.Parse(useByDateLayout, useByDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid use-by date: %w", apperrors.ErrValidation)
	}

	return date, nil
}

// Create lists a new item for a donor with status available. One call
// persists exactly one record.
func (s *itemService) Create(donorID string, req *models.CreateItemRequest) (*entities.Item, error) {
	if donorID == "" {
		return nil, fmt.Errorf("donor is required: %w", apperrors.ErrValidation)
	}

	date, err := parseItemFields(req.Name, req.Description, req.Quantity, req.UseByDate)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.Create(req.Name, req.Description, req.Quantity, req.Category, date, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// Get returns a single item
func (s *itemService) Get(id string) (*entities.Item, error) {
	return s.itemRepo.FindByID(id)
}

// List returns a page of available, unexpired items with the total page
// count. Pages are 1-indexed; page boundaries under concurrent inserts
// are only as stable as insertion order.
func (s *itemService) List(search, category string, page, limit int) (*models.ItemListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := repository.ItemFilter{Search: search, Category: category}
	items, total, err := s.itemRepo.FindAvailable(filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	totalPages := (total + limit - 1) / limit

	return &models.ItemListResponse{
		Items:      items,
		Page:       page,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Claim transitions an item from available to claimed for a pantry and
// queues a notification to the donor. The transition is an atomic
// conditional update at the storage layer; when two pantries race,
// exactly one wins and the loser gets not-found. Notification delivery
// is best-effort and never rolls back the claim.
func (s *itemService) Claim(itemID, pantryID string) error {
	if err := s.itemRepo.Claim(itemID, pantryID); err != nil {
		return err
	}

	s.notifyDonor(itemID, pantryID)
	return nil
}

func (s *itemService) notifyDonor(itemID, pantryID string) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		s.logger.Error("claimed item lookup failed, skipping notification", "item_id", itemID, "error", err)
		return
	}

	donor, err := s.userRepo.FindByID(item.DonorID)
	if err != nil {
		s.logger.Error("donor lookup failed, skipping notification", "donor_id", item.DonorID, "error", err)
		return
	}

	pantry, err := s.userRepo.FindByID(pantryID)
	if err != nil {
		s.logger.Error("pantry lookup failed, skipping notification", "pantry_id", pantryID, "error", err)
		return
	}

	task := mailer.ClaimedEmail(donor.Email, item.Name, pantry.Name)
	if err := s.publisher.PublishEmailTask(s.ctx, task); err != nil {
		s.logger.Error("failed to queue claim notification", "item_id", itemID, "error", err)
	}
}

// Update edits an item's listing fields. Only the owning donor or an
// admin may edit.
func (s *itemService) Update(itemID, actorID string, actorRole entities.Role, req *models.UpdateItemRequest) error {
	date, err := parseItemFields(req.Name, req.Description, req.Quantity, req.UseByDate)
	if err != nil {
		return err
	}

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return err
	}

	if actorRole != entities.RoleAdmin && item.DonorID != actorID {
		return fmt.Errorf("item belongs to another donor: %w", apperrors.ErrForbidden)
	}

	return s.itemRepo.Update(itemID, req.Name, req.Description, req.Quantity, req.Category, date)
}

// Delete removes an item unconditionally
func (s *itemService) Delete(itemID string) error {
	return s.itemRepo.Delete(itemID)
}

// ListByDonor returns a donor's listings
func (s *itemService) ListByDonor(donorID string) ([]*entities.Item, error) {
	return s.itemRepo.FindByDonorID(donorID)
}

// ListByPantry returns the items a pantry user has claimed
func (s *itemService) ListByPantry(pantryID string) ([]*entities.Item, error) {
	return s.itemRepo.FindByPantryID(pantryID)
}
