package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken membaca c.Locals("user_id") yang diisi middleware auth.
// 401 kalau belum login, 400 kalau formatnya rusak.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var raw string
	switch t := c.Locals(LocUserID).(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		raw = strings.TrimSpace(t)
	}
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	return id, nil
}

// ActorString: id user untuk log; "-" kalau tidak ada (mis. CLI/test).
func ActorString(c *fiber.Ctx) string {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return "-"
	}
	return id.String()
}
