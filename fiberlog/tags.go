package fiberlog

import (
	"time"

	authutils "smarthire-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid      = "pid"
	TagStatus   = "status"
	TagLatency  = "latency"
	TagMethod   = "method"
	TagPath     = "path"
	TagRoute    = "route"
	TagURL      = "url"
	TagIP       = "ip"
	TagBody     = "body"
	TagResBody  = "resBody"
	TagUserID   = "userId"
	TagUserRole = "userRole"
	RequestID   = "requestId"
)

// data is collected once per request.
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag returns the value of a tag for the request.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var funcTags = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagRoute: func(c *fiber.Ctx, d *data) interface{} {
		if route := c.Route(); route != nil {
			return route.Path
		}
		return ""
	},
	TagURL: func(c *fiber.Ctx, d *data) interface{} {
		return c.OriginalURL()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Response().Body())
	},
	TagUserID: func(c *fiber.Ctx, d *data) interface{} {
		return authutils.Actor(authutils.GetClaims(c)).ID
	},
	TagUserRole: func(c *fiber.Ctx, d *data) interface{} {
		return string(authutils.Actor(authutils.GetClaims(c)).Role)
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		if id, ok := c.Locals("requestid").(string); ok {
			return id
		}
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

// getFuncTagMap picks the tag functions named in the config. Unknown tags
// are ignored.
func getFuncTagMap(cfg Config) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
