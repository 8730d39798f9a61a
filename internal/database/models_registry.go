package database

import "loopcraft/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Dependents are listed after their owners so AutoMigrate creates foreign keys
// in order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Pattern{},
		&models.PatternImage{},
		&models.Post{},
		&models.InventoryItem{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.SavedPost{},
		&models.SavedPattern{},
	}
}
