// internals/middlewares/auth/jwt_auth.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// key c.Locals
const (
	LocUserID    = "user_id"
	LocJWTClaims = "jwt_claims"
	LocIsCron    = "is_cron"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
	Optional            bool // tanpa token → lanjut sebagai anonim; token rusak tetap 401
}

// AuthJWT memverifikasi token HS256 dari identity provider dan menyimpan user id ke Locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" && o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			if o.Optional {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, err := parseToken(raw, secret)
		if err != nil {
			return err
		}
		c.Locals(LocJWTClaims, claims)

		// user_id: ambil id/sub/user_id dalam urutan preferensi
		var sid string
		for _, key := range []string{"id", "sub", "user_id"} {
			if sid = strClaim(claims, key); sid != "" {
				break
			}
		}
		uid, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or missing user ID")
		}
		c.Locals(LocUserID, uid)

		return c.Next()
	}
}

func parseToken(raw, secret string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	return claims, nil
}

// UserID mengembalikan user id hasil AuthJWT (false bila anonim).
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocUserID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func bearerToken(c *fiber.Ctx) string {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
