package http

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/handlers/http/response"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const uploadFormField = "file"

type evaluateHandler struct {
	logger    *logrus.Logger
	evaluator audit.Evaluator
}

func NewEvaluateHandler(logger *logrus.Logger, evaluator audit.Evaluator) Handler {
	return &evaluateHandler{
		logger:    logger,
		evaluator: evaluator,
	}
}

// Handle @Summary Evaluate an image synchronously
// @Description Runs every classifier stage on the uploaded bytes and returns the audit result. Nothing is stored.
// @Tags Audit
// @Accept multipart/form-data,application/octet-stream
// @Produce json
// @Success 200 {object} response.EvaluateOutput
// @Failure 400 {object} map[string]interface{}
// @Failure 415 {object} map[string]interface{}
// @Router /api/v1/audit [post]
func (h *evaluateHandler) Handle(c *fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil {
		h.logger.WithError(err).Debug("failed to read upload")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported content type %s", mt.String()),
		})
	}

	blob := audit.NewContentBlob(data, "")
	result, err := h.evaluator.Evaluate(c.UserContext(), blob)
	if err != nil {
		if errors.Is(err, audit.ErrEmptyBlob) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("evaluation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "evaluation failed"})
	}

	return c.Status(fiber.StatusOK).JSON(response.EvaluateOutput{
		Fingerprint: blob.Fingerprint,
		ContentType: mt.String(),
		Result:      result,
	})
}

// readUpload accepts a multipart "file" field or a raw body. The returned
// slice does not alias fasthttp's request buffer.
func readUpload(c *fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile(uploadFormField)
		if err != nil {
			return nil, fmt.Errorf("missing %q form field: %w", uploadFormField, err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, audit.ErrEmptyBlob
		}
		return data, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, audit.ErrEmptyBlob
	}
	return append([]byte(nil), body...), nil
}
