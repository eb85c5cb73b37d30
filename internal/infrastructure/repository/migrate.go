package repository

import (
	"context"
	"fmt"

	"github.com/waste3d/learnpath-api/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates every table the service owns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := NewProgressRepository(db).Migrate(ctx); err != nil {
		return err
	}
	if err := db.WithContext(ctx).AutoMigrate(&domain.Enrollment{}, &domain.Onboarding{}, &domain.LoginCredential{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
