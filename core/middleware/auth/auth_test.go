package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/compare/profiles", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/swagger/index.html", func(c *fiber.Ctx) error { return c.SendString("docs") })
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		header map[string]string
		want   int
	}{
		{name: "disabled", cfg: Config{}, path: "/compare/profiles", want: fiber.StatusOK},
		{name: "missing key", cfg: Config{ApiKey: "secret"}, path: "/compare/profiles", want: fiber.StatusUnauthorized},
		{name: "wrong key", cfg: Config{ApiKey: "secret"}, path: "/compare/profiles", header: map[string]string{HeaderName: "nope"}, want: fiber.StatusUnauthorized},
		{name: "header key", cfg: Config{ApiKey: "secret"}, path: "/compare/profiles", header: map[string]string{HeaderName: "secret"}, want: fiber.StatusOK},
		{name: "bearer key", cfg: Config{ApiKey: "secret"}, path: "/compare/profiles", header: map[string]string{"Authorization": "Bearer secret"}, want: fiber.StatusOK},
		{name: "skipped path", cfg: Config{ApiKey: "secret", Skip: []string{"/swagger"}}, path: "/swagger/index.html", want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := setupApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
