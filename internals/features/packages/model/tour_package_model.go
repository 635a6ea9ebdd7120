package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TourPackage dikelola oleh layar admin; core hanya membacanya.
type TourPackage struct {
	TourPackageID           uuid.UUID `gorm:"column:tour_package_id;type:uuid;primaryKey" json:"tour_package_id"`
	TourPackageName         string    `gorm:"column:tour_package_name;type:varchar(200);not null" json:"tour_package_name"`
	TourPackagePriceIDR     int64     `gorm:"column:tour_package_price_idr;not null;default:0" json:"tour_package_price_idr"`
	TourPackageDurationDays int       `gorm:"column:tour_package_duration_days;not null;default:1" json:"tour_package_duration_days"`
	TourPackageIsActive     bool      `gorm:"column:tour_package_is_active;not null;default:true" json:"tour_package_is_active"`

	TourPackageCreatedAt time.Time `gorm:"column:tour_package_created_at;autoCreateTime" json:"tour_package_created_at"`
	TourPackageUpdatedAt time.Time `gorm:"column:tour_package_updated_at;autoUpdateTime" json:"tour_package_updated_at"`
}

func (TourPackage) TableName() string { return "tour_packages" }

func (p *TourPackage) BeforeCreate(*gorm.DB) error {
	if p.TourPackageID == uuid.Nil {
		p.TourPackageID = uuid.New()
	}
	return nil
}
