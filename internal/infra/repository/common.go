package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// notFound turns gorm's ErrRecordNotFound into a business error with code.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func getStudio(ctx context.Context, db *gorm.DB, id uint) (*models.Studio, error) {
	var studio models.Studio
	if err := db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, notFound(err, "studio_not_found")
	}
	return &studio, nil
}

func getStaffMember(ctx context.Context, db *gorm.DB, studioID, staffID uint) (*models.StaffMember, error) {
	var staff models.StaffMember
	if err := db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", staffID, studioID).
		First(&staff).Error; err != nil {
		return nil, notFound(err, "staff_not_found")
	}
	return &staff, nil
}
