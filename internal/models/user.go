// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a member of the crafting community.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Name        string    `gorm:"not null" json:"name"`
	Username    string    `gorm:"not null" json:"username"`
	Password    string    `gorm:"not null" json:"-"`
	Bio         string    `json:"bio"`
	Link        string    `json:"link"`
	Avatar      string    `json:"avatar"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Posts    []Post          `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Patterns []Pattern       `gorm:"foreignKey:CreatorID" json:"patterns,omitempty"`
	Items    []InventoryItem `gorm:"foreignKey:UserID" json:"items,omitempty"`
}

// BeforeCreate assigns a UUID if none was provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
