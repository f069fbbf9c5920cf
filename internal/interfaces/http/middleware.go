package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/pkg/logger"
)

// requestObserver lo implementa *metrics.Metrics.
type requestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// RequestLogger registra cada petición; las 5xx incluyen el error que las causó.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if err, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(err)
			}
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}

// Metrics cuenta peticiones por ruta registrada (no por URL, para acotar la cardinalidad).
func Metrics(m requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := ""
		if r := c.Route(); r != nil {
			path = r.Path
		}
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		m.ObserveRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}
