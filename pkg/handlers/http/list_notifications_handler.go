package http

import (
	"errors"

	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const maxNotificationsLimit = 200

type listNotificationsHandler struct {
	logger *logrus.Logger
	repo   notification.Repository
}

func NewListNotificationsHandler(logger *logrus.Logger, repo notification.Repository) Handler {
	return &listNotificationsHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary List notifications for a user or device
// @Tags Moderation
// @Produce json
// @Param user_id query int false "User id"
// @Param device_id query string false "Device id"
// @Param unread query bool false "Only unread"
// @Param limit query int false "Page size"
// @Success 200 {array} notification.Notification
// @Router /api/v1/notifications [get]
func (h *listNotificationsHandler) Handle(c *fiber.Ctx) error {
	var to notification.Recipient
	if raw := c.Query("user_id"); raw != "" {
		id := int64(c.QueryInt("user_id", -1))
		if id < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
		}
		to.UserID = &id
	}
	to.DeviceID = c.Query("device_id")
	if err := to.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > maxNotificationsLimit {
		limit = maxNotificationsLimit
	}

	items, err := h.repo.ListByRecipient(c.UserContext(), to, c.QueryBool("unread", false), limit)
	if err != nil {
		if errors.Is(err, notification.ErrInvalidRecipient) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("recipient", to.String()).Error("failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list notifications"})
	}
	if items == nil {
		items = []notification.Notification{}
	}
	return c.Status(fiber.StatusOK).JSON(items)
}
