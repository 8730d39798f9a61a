package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records a user liking a post. One like per (user, post).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is free text a user left on a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedPost bookmarks a post for a user.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_saved_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedPattern bookmarks a pattern for a user.
type SavedPattern struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_pattern" json:"user_id"`
	PatternID uint      `gorm:"not null;uniqueIndex:idx_saved_pattern" json:"pattern_id"`
	CreatedAt time.Time `json:"created_at"`
}
