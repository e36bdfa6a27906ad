package http

import (
	"errors"

	"github.com/NeuralTrust/TrustImage/pkg/app/moderation"
	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/domain/storage"
	"github.com/NeuralTrust/TrustImage/pkg/handlers/http/request"
	"github.com/NeuralTrust/TrustImage/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type scheduleModerationHandler struct {
	logger    *logrus.Logger
	objects   storage.ObjectStore
	scheduler moderation.Scheduler
}

func NewScheduleModerationHandler(
	logger *logrus.Logger,
	objects storage.ObjectStore,
	scheduler moderation.Scheduler,
) Handler {
	return &scheduleModerationHandler{
		logger:    logger,
		objects:   objects,
		scheduler: scheduler,
	}
}

// Handle @Summary Re-audit a published object
// @Description Fetches the object and schedules a moderation job for it. The takedown, if any, happens in the background.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body request.ModerationRequest true "Object to re-audit"
// @Success 202 {object} response.ModerationOutput
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/moderation [post]
func (h *scheduleModerationHandler) Handle(c *fiber.Ctx) error {
	var req request.ModerationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.objects.Get(c.UserContext(), req.ObjectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
		}
		h.logger.WithError(err).WithField("key", req.ObjectKey).Error("failed to fetch object")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to fetch object"})
	}

	blob := audit.NewContentBlob(data, req.ObjectKey)
	id, err := h.scheduler.Schedule(blob, req.Owner())
	out := response.ModerationOutput{
		JobID:       id.String(),
		Fingerprint: blob.Fingerprint,
		Status:      response.StatusScheduled,
	}
	switch {
	case err == nil:
		return c.Status(fiber.StatusAccepted).JSON(out)
	case errors.Is(err, moderation.ErrDuplicateJob):
		out.Status = response.StatusCoalesced
		return c.Status(fiber.StatusAccepted).JSON(out)
	case errors.Is(err, moderation.ErrDisabled):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, moderation.ErrQueueFull), errors.Is(err, moderation.ErrSchedulerClosed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, audit.ErrEmptyBlob):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "object is empty"})
	default:
		h.logger.WithError(err).Error("failed to schedule moderation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
