package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge in the social graph: the follower receives the
// followed user's content in their feed. The composite unique index makes
// duplicate edges impossible even under concurrent requests.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}
