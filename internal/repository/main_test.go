package repository

import (
	"fmt"
	"testing"
	"time"

	"loopcraft/internal/database"
	"loopcraft/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return db
}

var userSeq int

// createTestUser persists a minimal user for repository tests.
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Name:     username,
		Username: username,
		Email:    fmt.Sprintf("%s_%d@example.com", username, userSeq),
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestPost persists a post with an explicit timestamp.
func createTestPost(t *testing.T, db *gorm.DB, user *models.User, caption string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:    user.ID,
		Caption:   caption,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// createTestPattern persists a pattern with an explicit timestamp.
func createTestPattern(t *testing.T, db *gorm.DB, user *models.User, name string, difficulty models.Difficulty, at time.Time) *models.Pattern {
	t.Helper()
	pattern := &models.Pattern{
		CreatorID:   user.ID,
		Name:        name,
		Description: "a " + name,
		Difficulty:  difficulty,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(pattern).Error)
	return pattern
}

// follow creates an edge directly, bypassing the repository under test.
func follow(t *testing.T, db *gorm.DB, follower, following *models.User) {
	t.Helper()
	require.NoError(t, db.Create(&models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}).Error)
}
