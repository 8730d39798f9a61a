package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a photo post in a user's feed, optionally linking a pattern.
// CreatedAt is fixed at creation; re-saving a post never refreshes it.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Image     string    `json:"image"`
	PatternID *uint     `gorm:"index" json:"pattern_id"`
	Pattern   *Pattern  `gorm:"foreignKey:PatternID" json:"pattern,omitempty"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
