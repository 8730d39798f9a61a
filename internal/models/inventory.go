package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemType classifies an inventory item.
type ItemType string

const (
	ItemTypeYarn       ItemType = "yarn"
	ItemTypeHookNeedle ItemType = "hook_needle"
	ItemTypeOther      ItemType = "other"
)

// Valid reports whether t is a member of the closed item-type set.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeYarn, ItemTypeHookNeedle, ItemTypeOther:
		return true
	}
	return false
}

// InventoryItem is a supply (yarn, hooks, needles, stuffing) owned by a user.
type InventoryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name        string    `gorm:"not null" json:"name"`
	ItemType    ItemType  `gorm:"type:varchar(20);not null" json:"item_type"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}
