package middleware

import (
	"fmt"
	"strconv"

	apimodels "smarthire-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit rejects requests whose declared or actual body is larger than limit.
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if contentLength := c.Get(fiber.HeaderContentLength); contentLength != "" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return tooLarge(c, limit)
			}
		}
		if int64(len(c.Body())) > limit {
			return tooLarge(c, limit)
		}
		return c.Next()
	}
}

func tooLarge(c *fiber.Ctx, limit int64) error {
	return c.Status(fiber.StatusRequestEntityTooLarge).
		JSON(apimodels.NewError(fmt.Sprintf("request body too large, maximum allowed: %d bytes", limit)))
}
