package http

import (
	"github.com/NeuralTrust/TrustImage/pkg/app/moderation"
	"github.com/NeuralTrust/TrustImage/pkg/handlers/http/response"
	"github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listClassifiersHandler struct {
	logger       *logrus.Logger
	models       modelmanager.Manager
	scheduler    moderation.Scheduler
	enabled      bool
	policyDigest string
}

func NewListClassifiersHandler(
	logger *logrus.Logger,
	models modelmanager.Manager,
	scheduler moderation.Scheduler,
	enabled bool,
	policyDigest string,
) Handler {
	return &listClassifiersHandler{
		logger:       logger,
		models:       models,
		scheduler:    scheduler,
		enabled:      enabled,
		policyDigest: policyDigest,
	}
}

// Handle @Summary Classifier lifecycle status
// @Tags Audit
// @Produce json
// @Success 200 {object} response.ClassifiersOutput
// @Router /api/v1/classifiers [get]
func (h *listClassifiersHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.ClassifiersOutput{
		ModerationEnabled: h.enabled,
		PolicyDigest:      h.policyDigest,
		Pending:           h.scheduler.Pending(),
		Classifiers:       h.models.Status(),
	})
}
