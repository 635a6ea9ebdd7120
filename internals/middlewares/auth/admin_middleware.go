package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourku_backend/internals/constants"
	adminRepo "tourku_backend/internals/features/users/admins/repository"
)

// IsAdmin: dipasang setelah AuthJWT. User harus terdaftar aktif di tabel admins.
func IsAdmin(db *gorm.DB, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(LocIsCron) == true {
			return c.Next()
		}
		uid, ok := UserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, constants.LoginRequired(constants.FeatureAdmin))
		}
		isAdmin, err := adminRepo.IsActiveAdmin(c.UserContext(), db, uid)
		if err != nil {
			log.WithError(err).WithField("user_id", uid).Error("admin lookup failed")
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
		if !isAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(constants.FeatureAdmin))
		}
		return c.Next()
	}
}

// CronOrJWT: "Bearer <CRON_SECRET>" menandai request scheduler eksternal (lewat IsAdmin),
// selain itu diteruskan ke AuthJWT biasa.
func CronOrJWT(cronSecret string, jwtAuth fiber.Handler) fiber.Handler {
	cronSecret = strings.TrimSpace(cronSecret)
	return func(c *fiber.Ctx) error {
		if cronSecret != "" {
			if raw := bearerToken(c); raw != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(cronSecret)) == 1 {
				c.Locals(LocIsCron, true)
				return c.Next()
			}
		}
		return jwtAuth(c)
	}
}
