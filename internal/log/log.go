// Package log is a thin request-aware facade over logrus. Handlers and
// services pass the fiber context (or nil outside a request) and an action
// name; request metadata is attached automatically.
package log

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var base = logrus.New()

func init() {
	base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

// Logger exposes the underlying logger for components that need one injected.
func Logger() *logrus.Logger { return base }

func SetOutput(w io.Writer) { base.SetOutput(w) }

func fields(c *fiber.Ctx, extra map[string]any) logrus.Fields {
	f := logrus.Fields{}
	if c != nil {
		f["ip"] = c.IP()
		f["method"] = c.Method()
		f["path"] = c.Path()
		f["status"] = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			f["req_id"] = rid
		}
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func Info(c *fiber.Ctx, action string, extra map[string]any) {
	base.WithFields(fields(c, extra)).Info(action)
}

func Audit(c *fiber.Ctx, action string, extra map[string]any) {
	f := fields(c, extra)
	f["audit"] = true
	base.WithFields(f).Info(action)
}

func Security(c *fiber.Ctx, action string, extra map[string]any) {
	base.WithFields(fields(c, extra)).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, extra map[string]any) {
	base.WithFields(fields(c, extra)).WithError(err).Error(action)
}
