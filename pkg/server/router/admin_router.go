package router

import (
	handlers "github.com/NeuralTrust/TrustImage/pkg/handlers/http"
	"github.com/NeuralTrust/TrustImage/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	if r.handlerTransport == nil || r.middlewareTransport == nil {
		return ErrInvalidHandlerTransport
	}
	h := r.handlerTransport
	m := r.middlewareTransport

	router.Get("/version", h.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		for _, mw := range []middleware.Middleware{m.PanicRecoverMiddleware, m.MetricsMiddleware, m.AdminAuthMiddleware} {
			if mw != nil {
				v1.Use(mw.Middleware())
			}
		}

		v1.Post("/audit", h.EvaluateHandler.Handle)
		v1.Get("/classifiers", h.ListClassifiersHandler.Handle)
		v1.Post("/moderation", h.ScheduleModerationHandler.Handle)
		v1.Get("/notifications", h.ListNotificationsHandler.Handle)
	}
	return nil
}
