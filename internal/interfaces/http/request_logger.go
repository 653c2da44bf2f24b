package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/taller-inventario/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	localLogger     = "logger"
	localRequestID  = "request_id"
)

// HTTPObserver recibe la duración y el código de cada request (métricas).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger asigna un request id (o respeta el entrante), deja un logger con ese id
// en c.Locals y registra método, ruta, código y latencia al terminar.
func RequestLogger(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)
		c.Locals(localRequestID, reqID)

		scoped := log.Named("http").WithField("request_id", reqID)
		c.Locals(localLogger, scoped)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de fiber fije el código antes de registrar.
			if hErr := c.App().Config().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path
		if observer != nil {
			observer.ObserveHTTP(c.Method(), route, status, elapsed)
		}

		ev := scoped.Info()
		if status >= fiber.StatusInternalServerError {
			ev = scoped.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = scoped.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}

// requestLog logger del request (o Nop si el middleware no corrió).
func requestLog(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
