package packages

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourku_backend/internals/features/packages/model"
	"tourku_backend/internals/features/packages/repository"
)

type TourPackageSeed struct {
	TourPackageName         string `json:"tour_package_name"`
	TourPackagePriceIDR     int64  `json:"tour_package_price_idr"`
	TourPackageDurationDays int    `json:"tour_package_duration_days"`
}

// SeedTourPackagesFromJSON: paket dengan nama yang sudah ada dilewati.
// Mengembalikan jumlah paket yang di-insert.
func SeedTourPackagesFromJSON(ctx context.Context, db *gorm.DB, log *logrus.Logger, filePath string) (int, error) {
	log.WithField("file", filePath).Info("📥 seeding tour packages")

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}

	var seeds []TourPackageSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	inserted := 0
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.TourPackageName)
		if name == "" || seed.TourPackagePriceIDR <= 0 {
			log.WithField("name", name).Warn("skip invalid tour package seed")
			continue
		}

		_, err := repository.FindTourPackageByName(ctx, db, name)
		if err == nil {
			log.WithField("name", name).Debug("tour package exists, skip")
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, err
		}

		days := seed.TourPackageDurationDays
		if days <= 0 {
			days = 1
		}
		p := model.TourPackage{
			TourPackageName:         name,
			TourPackagePriceIDR:     seed.TourPackagePriceIDR,
			TourPackageDurationDays: days,
			TourPackageIsActive:     true,
		}
		if err := repository.CreateTourPackage(ctx, db, &p); err != nil {
			return inserted, fmt.Errorf("insert %q: %w", name, err)
		}
		inserted++
		log.WithField("name", name).Info("✅ tour package inserted")
	}
	return inserted, nil
}
