package repository

import (
	"context"
	"errors"

	"loopcraft/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository defines the interface for inventory item data operations
type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error)
	DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) error
}

// inventoryRepository implements InventoryRepository
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).Preload("User").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("InventoryItem", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *inventoryRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// DeleteOwned removes an item only if it belongs to userID. An item owned by
// someone else is indistinguishable from a missing one.
func (r *inventoryRepository) DeleteOwned(ctx context.Context, id uint, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.InventoryItem{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("InventoryItem", id)
	}
	return nil
}
