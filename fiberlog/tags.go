package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagBody      = "body"
	TagResBody   = "resBody"
	TagUA        = "ua"
	TagUserID    = "user_id"
	TagRequestID = "request_id"
	maxBodySize  = 4096
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение поля лога для тега
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var tagFuncs = map[string]FuncTag{
	TagPid: func(_ *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Path()
	},
	TagURL: func(c *fiber.Ctx, _ *data) interface{} {
		return c.OriginalURL()
	},
	TagIP: func(c *fiber.Ctx, _ *data) interface{} {
		return c.IP()
	},
	TagBody: func(c *fiber.Ctx, _ *data) interface{} {
		if fiber.IsChild() || len(c.Body()) == 0 {
			return ""
		}
		if c.Is("json") {
			return truncate(string(c.Body()))
		}
		return ""
	},
	TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
		body := c.Response().Body()
		if c.Response().StatusCode() < fiber.StatusBadRequest || len(body) == 0 {
			return ""
		}
		return truncate(string(body))
	},
	TagUA: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagUserID: func(c *fiber.Ctx, _ *data) interface{} {
		if userID, ok := c.Locals("userID").(uint); ok {
			return userID
		}
		return ""
	},
	TagRequestID: func(c *fiber.Ctx, _ *data) interface{} {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = c.GetRespHeader(fiber.HeaderXRequestID)
		}
		return id
	},
}

func getFuncTagMap(cfg Config, _ *data) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := tagFuncs[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncate(value string) string {
	if len(value) > maxBodySize {
		return value[:maxBodySize] + "..."
	}
	return value
}
