package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/swagger/index.html", func(c *fiber.Ctx) error { return c.SendString("docs") })
	app.Get("/validation/checklist", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestNew(t *testing.T) {
	skipDocs := func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/swagger") }

	tests := []struct {
		name   string
		cfg    Config
		path   string
		key    string
		status int
	}{
		{"Disabled", Config{}, "/validation/checklist", "", 200},
		{"Valid Key", Config{ApiKey: "secret"}, "/validation/checklist", "secret", 200},
		{"Missing Key", Config{ApiKey: "secret"}, "/validation/checklist", "", 401},
		{"Wrong Key", Config{ApiKey: "secret"}, "/validation/checklist", "secreT", 401},
		{"Skipped", Config{ApiKey: "secret", Next: skipDocs}, "/swagger/index.html", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderName, tt.key)
			}
			resp, err := newApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
