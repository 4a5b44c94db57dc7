// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals yang diisi middleware auth.
const (
	LocUserID   = "user_id"
	LocUserRole = "userRole"
)

// GetRawAccessToken: header "Authorization: Bearer <token>".
// allowCookie → fallback cookie "access_token" kalau header kosong.
func GetRawAccessToken(c *fiber.Ctx, allowCookie bool) string {
	const p = "bearer "
	if auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.Trim(strings.TrimSpace(auth[len(p):]), "\"'")
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}
