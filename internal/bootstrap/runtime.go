// Package bootstrap wires runtime dependencies before the HTTP layer starts.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"loopcraft/internal/cache"
	"loopcraft/internal/config"
	"loopcraft/internal/database"
	"loopcraft/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and applies development-only
// bootstrap steps. The Redis client may be nil when the server is unreachable;
// callers degrade gracefully.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := ensureDevSuperuser(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development superuser: %w", err)
	}

	return db, r, nil
}

// ensureDevSuperuser creates a staff account for local development when
// DEV_BOOTSTRAP_ROOT is enabled. It never runs outside the development env.
func ensureDevSuperuser(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	username := strings.TrimSpace(cfg.DevRootUsername)
	if username == "" {
		username = "loopcraft_root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@loopcraft.local"
	}
	password := cfg.DevRootPassword
	if password == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.Where("email = ?", email).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			return tx.Create(&models.User{
				Name:        "Root",
				Username:    username,
				Email:       email,
				Password:    string(hashedPassword),
				IsActive:    true,
				IsStaff:     true,
				IsSuperuser: true,
			}).Error
		case findErr != nil:
			return findErr
		}

		// Keep the existing account usable with the configured credentials.
		return tx.Model(&root).Updates(map[string]any{
			"password":     string(hashedPassword),
			"username":     username,
			"is_active":    true,
			"is_staff":     true,
			"is_superuser": true,
		}).Error
	})
}
