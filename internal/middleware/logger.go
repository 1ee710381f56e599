package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const loggerKey = "logger"

// RequestLogger logs every request and puts request scoped logger into echo context.
// Must be registered after request id middleware.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			entry := logger.WithFields(logrus.Fields{
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"uri":        req.RequestURI,
			})
			c.Set(loggerKey, entry)

			if err := next(c); err != nil {
				c.Error(err)
			}

			entry = entry.WithFields(logrus.Fields{
				"status":  res.Status,
				"latency": time.Since(start).String(),
			})

			switch {
			case res.Status >= 500:
				entry.Error("request failed")
			case res.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request completed")
			}
			return nil
		}
	}
}

// Logger returns request scoped logger, falls back to standard logger outside of RequestLogger
func Logger(c echo.Context) logrus.FieldLogger {
	if l, ok := c.Get(loggerKey).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}
