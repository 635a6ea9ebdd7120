package seeds

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourku_backend/internals/seeds/admins"
	"tourku_backend/internals/seeds/packages"
)

const (
	TourPackagesFile = "tour_packages.json"
	AdminsFile       = "admins.json"
)

// RunAllSeeds membaca file seed dari dir. File yang tidak ada dilewati.
func RunAllSeeds(ctx context.Context, db *gorm.DB, log *logrus.Logger, dir string) error {

	//* Tour packages
	if path, ok := seedFile(dir, TourPackagesFile); ok {
		if _, err := packages.SeedTourPackagesFromJSON(ctx, db, log, path); err != nil {
			return err
		}
	}

	//* Admins
	if path, ok := seedFile(dir, AdminsFile); ok {
		if _, err := admins.SeedAdminsFromJSON(ctx, db, log, path); err != nil {
			return err
		}
	}

	return nil
}

func seedFile(dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return path, false
	}
	return path, true
}
