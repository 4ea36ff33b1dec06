package database

import (
	"fmt"

	"github.com/WatsonMulkey/The-Number/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Transaction{},
		&models.Setting{},
		&models.Backup{},
		&models.AuditLog{},
		&models.ResetToken{},
		&models.RateHit{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
