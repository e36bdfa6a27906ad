package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	GetVersionHandler Handler

	// Audit
	EvaluateHandler        Handler
	ListClassifiersHandler Handler

	// Moderation
	ScheduleModerationHandler Handler
	ListNotificationsHandler  Handler
}
