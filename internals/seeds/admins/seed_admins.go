package admins

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourku_backend/internals/features/users/admins/repository"
)

type AdminSeed struct {
	AdminUserID   uuid.UUID `json:"admin_user_id"`
	AdminIsActive *bool     `json:"admin_is_active"` // default true
}

// SeedAdminsFromJSON meng-upsert operator dari identity provider.
func SeedAdminsFromJSON(ctx context.Context, db *gorm.DB, log *logrus.Logger, filePath string) (int, error) {
	log.WithField("file", filePath).Info("📥 seeding admins")

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}

	var seeds []AdminSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	n := 0
	for _, seed := range seeds {
		if seed.AdminUserID == uuid.Nil {
			log.Warn("skip admin seed without user id")
			continue
		}
		active := seed.AdminIsActive == nil || *seed.AdminIsActive
		if err := repository.UpsertAdmin(ctx, db, seed.AdminUserID, active); err != nil {
			return n, fmt.Errorf("upsert admin %s: %w", seed.AdminUserID, err)
		}
		n++
	}
	log.WithField("count", n).Info("✅ admins seeded")
	return n, nil
}
