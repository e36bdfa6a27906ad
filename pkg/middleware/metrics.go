package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

// Middleware records one request sample per matched route.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		prometheus.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.HTTPLatency.WithLabelValues(c.Method(), route).
				Observe(float64(time.Since(start).Milliseconds()))
		}
		return err
	}
}
