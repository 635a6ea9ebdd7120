package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourku_backend/internals/features/packages/model"
)

func FindTourPackageByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.TourPackage, error) {
	var p model.TourPackage
	if err := db.WithContext(ctx).First(&p, "tour_package_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func FindTourPackageByName(ctx context.Context, db *gorm.DB, name string) (*model.TourPackage, error) {
	var p model.TourPackage
	if err := db.WithContext(ctx).Where("tour_package_name = ?", name).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func CreateTourPackage(ctx context.Context, db *gorm.DB, p *model.TourPackage) error {
	return db.WithContext(ctx).Create(p).Error
}
