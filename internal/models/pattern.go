package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty is the skill level required to work a pattern.
type Difficulty string

const (
	DifficultyBeginner         Difficulty = "beginner"
	DifficultyAdvancedBeginner Difficulty = "advanced_beginner"
	DifficultyIntermediate     Difficulty = "intermediate"
	DifficultyAdvanced         Difficulty = "advanced"
	DifficultyExpert           Difficulty = "expert"
)

// difficultyRank orders difficulties beginner -> expert for search results.
var difficultyRank = map[Difficulty]int{
	DifficultyBeginner:         0,
	DifficultyAdvancedBeginner: 1,
	DifficultyIntermediate:     2,
	DifficultyAdvanced:         3,
	DifficultyExpert:           4,
}

// Valid reports whether d is a member of the closed difficulty set.
func (d Difficulty) Valid() bool {
	_, ok := difficultyRank[d]
	return ok
}

// Rank returns the ascending sort position of d (beginner first).
func (d Difficulty) Rank() int {
	return difficultyRank[d]
}

// Difficulties returns the closed difficulty set in ascending rank order.
func Difficulties() []Difficulty {
	return []Difficulty{
		DifficultyBeginner,
		DifficultyAdvancedBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced,
		DifficultyExpert,
	}
}

// Pattern is a published crafting pattern owned by its creator.
// Patterns are immutable after creation.
type Pattern struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator     User       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Difficulty  Difficulty `gorm:"type:varchar(20);not null" json:"difficulty"`
	Description string     `gorm:"not null" json:"description"`
	Image       string     `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`

	Images []PatternImage `gorm:"foreignKey:PatternID" json:"images,omitempty"`
}

// PatternImage is an additional image attached to a pattern.
type PatternImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PatternID uint      `gorm:"not null;index" json:"pattern_id"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
