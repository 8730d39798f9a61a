// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"loopcraft/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, excludeID uuid.UUID, query string) ([]models.User, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("a user with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("a user with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// Search matches other users whose name or username contains the query,
// case-insensitively, in deterministic id order.
func (r *userRepository) Search(ctx context.Context, excludeID uuid.UUID, query string) ([]models.User, error) {
	needle := "%" + strings.ToLower(query) + "%"
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ?", needle, needle).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// DeleteCascade removes a user and every row that references them inside a
// single transaction. The schema uses hard deletes, so dependent rows are
// cleared explicitly rather than relying on database-level ON DELETE rules.
func (r *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		var patternIDs []uint
		if err := tx.Model(&models.Pattern{}).Where("creator_id = ?", id).Pluck("id", &patternIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.SavedPost{}).Error; err != nil {
				return err
			}
		}
		if len(patternIDs) > 0 {
			if err := tx.Where("pattern_id IN ?", patternIDs).Delete(&models.PatternImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pattern_id IN ?", patternIDs).Delete(&models.SavedPattern{}).Error; err != nil {
				return err
			}
			// Posts by other users may link to these patterns; detach them.
			if err := tx.Model(&models.Post{}).Where("pattern_id IN ?", patternIDs).
				Update("pattern_id", nil).Error; err != nil {
				return err
			}
		}

		for _, del := range []error{
			tx.Where("user_id = ?", id).Delete(&models.Like{}).Error,
			tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error,
			tx.Where("user_id = ?", id).Delete(&models.SavedPost{}).Error,
			tx.Where("user_id = ?", id).Delete(&models.SavedPattern{}).Error,
			tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error,
			tx.Where("user_id = ?", id).Delete(&models.InventoryItem{}).Error,
			tx.Where("user_id = ?", id).Delete(&models.Post{}).Error,
			tx.Where("creator_id = ?", id).Delete(&models.Pattern{}).Error,
		} {
			if del != nil {
				return del
			}
		}

		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}
