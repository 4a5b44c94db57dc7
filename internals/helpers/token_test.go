package helper

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTokenOf(t *testing.T, allowCookie bool, header, cookie string) string {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRawAccessToken(c, allowCookie))
	})
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, "access_token="+cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestGetRawAccessToken(t *testing.T) {
	assert.Equal(t, "abc", rawTokenOf(t, false, "Bearer abc", ""))
	assert.Equal(t, "abc", rawTokenOf(t, false, `bearer "abc"`, ""))
	assert.Equal(t, "", rawTokenOf(t, false, "", "xyz"))
	assert.Equal(t, "xyz", rawTokenOf(t, true, "", "xyz"))
	assert.Equal(t, "abc", rawTokenOf(t, true, "Bearer abc", "xyz"))
	assert.Equal(t, "", rawTokenOf(t, true, "Basic abc", ""))
}
