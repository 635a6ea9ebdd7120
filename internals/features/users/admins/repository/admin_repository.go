package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourku_backend/internals/features/users/admins/model"
)

// IsActiveAdmin: true bila user id terdaftar sebagai admin aktif.
func IsActiveAdmin(ctx context.Context, db *gorm.DB, userID uuid.UUID) (bool, error) {
	var a model.Admin
	err := db.WithContext(ctx).
		Where("admin_user_id = ? AND admin_is_active = ?", userID, true).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpsertAdmin: ditulis lewat map karena struct bernilai false akan diganti default kolom (true).
func UpsertAdmin(ctx context.Context, db *gorm.DB, userID uuid.UUID, active bool) error {
	return db.WithContext(ctx).
		Model(&model.Admin{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "admin_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"admin_is_active"}),
		}).
		Create(map[string]any{
			"admin_user_id":    userID,
			"admin_is_active":  active,
			"admin_created_at": time.Now(),
		}).Error
}
