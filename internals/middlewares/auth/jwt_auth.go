// file: internals/middlewares/auth/jwt_auth.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "schoolku_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi HS* token lalu mengisi locals user_id & userRole.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c, o.AllowCookieFallback)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - token tidak ada")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - token tidak valid")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - claims tidak valid")
		}

		// user_id: id / sub / user_id (urutan preferensi)
		uid := firstClaim(claims, "id", "sub", "user_id")
		if _, err := uuid.Parse(uid); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - user id tidak valid")
		}
		c.Locals(helper.LocUserID, uid)

		if role := resolveRole(claims); role != "" {
			c.Locals(helper.LocUserRole, role)
		}
		return c.Next()
	}
}

func firstClaim(m jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// resolveRole: claim "role", fallback role tertinggi di "roles_global".
func resolveRole(m jwt.MapClaims) string {
	if r := firstClaim(m, "role"); r != "" {
		return strings.ToLower(r)
	}
	rank := map[string]int{"user": 1, "teacher": 2, "admin": 3, "owner": 4}
	best := ""
	if arr, ok := m["roles_global"].([]any); ok {
		for _, it := range arr {
			s, _ := it.(string)
			s = strings.ToLower(strings.TrimSpace(s))
			if rank[s] > rank[best] {
				best = s
			}
		}
	}
	return best
}
