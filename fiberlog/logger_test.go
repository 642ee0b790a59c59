package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	out := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagMethod, TagPath, TagStatus, TagLatency, TagUserRole, "unknown"}}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	t.Run(`success is info`, func(t *testing.T) {
		out.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
		require.Equal(t, "info", entry["level"])
		require.Equal(t, "GET", entry["method"])
		require.Equal(t, "/ping", entry["path"])
		require.Equal(t, float64(200), entry["status"])
		require.Contains(t, entry, "latency")
		require.NotContains(t, entry, "userRole")
		require.NotContains(t, entry, "unknown")
	})
	t.Run(`client errors are warnings`, func(t *testing.T) {
		out.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
		require.Equal(t, "warning", entry["level"])
	})
}
