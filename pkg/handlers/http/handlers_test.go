package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/TrustImage/pkg/app/moderation"
	schedulerMocks "github.com/NeuralTrust/TrustImage/pkg/app/moderation/mocks"
	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	auditMocks "github.com/NeuralTrust/TrustImage/pkg/domain/audit/mocks"
	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
	notificationMocks "github.com/NeuralTrust/TrustImage/pkg/domain/notification/mocks"
	"github.com/NeuralTrust/TrustImage/pkg/domain/storage"
	storageMocks "github.com/NeuralTrust/TrustImage/pkg/domain/storage/mocks"
	handlers "github.com/NeuralTrust/TrustImage/pkg/handlers/http"
	"github.com/NeuralTrust/TrustImage/pkg/handlers/http/response"
	"github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager"
	modelMocks "github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newApp(method, path string, h handlers.Handler) *fiber.App {
	app := fiber.New()
	app.Add(method, path, h.Handle)
	return app
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestEvaluateHandler_RawBody(t *testing.T) {
	evaluator := auditMocks.NewEvaluator(t)
	fingerprint := audit.Fingerprint(pngBytes)
	evaluator.EXPECT().
		Evaluate(mock.Anything, mock.MatchedBy(func(b audit.ContentBlob) bool {
			return b.Fingerprint == fingerprint && bytes.Equal(b.Data, pngBytes)
		})).
		Return(audit.NewPassResult(), nil).Once()
	app := newApp(fiber.MethodPost, "/audit", handlers.NewEvaluateHandler(testLogger(), evaluator))

	req := httptest.NewRequest(http.MethodPost, "/audit", bytes.NewReader(pngBytes))
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[response.EvaluateOutput](t, resp)
	assert.Equal(t, fingerprint, out.Fingerprint)
	assert.Equal(t, "image/png", out.ContentType)
	assert.True(t, out.Result.Safe)
}

func TestEvaluateHandler_Multipart(t *testing.T) {
	evaluator := auditMocks.NewEvaluator(t)
	unsafe := &audit.Result{Safe: false, Score: 0.9, Reason: "dangerous content: weapon"}
	evaluator.EXPECT().Evaluate(mock.Anything, mock.Anything).Return(unsafe, nil).Once()
	app := newApp(fiber.MethodPost, "/audit", handlers.NewEvaluateHandler(testLogger(), evaluator))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "upload.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/audit", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[response.EvaluateOutput](t, resp)
	assert.False(t, out.Result.Safe)
	assert.Equal(t, "dangerous content: weapon", out.Result.Reason)
}

func TestEvaluateHandler_RejectsNonImage(t *testing.T) {
	evaluator := auditMocks.NewEvaluator(t)
	app := newApp(fiber.MethodPost, "/audit", handlers.NewEvaluateHandler(testLogger(), evaluator))

	req := httptest.NewRequest(http.MethodPost, "/audit", bytes.NewReader([]byte("just some text")))
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestEvaluateHandler_EmptyBody(t *testing.T) {
	evaluator := auditMocks.NewEvaluator(t)
	app := newApp(fiber.MethodPost, "/audit", handlers.NewEvaluateHandler(testLogger(), evaluator))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/audit", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateHandler_EvaluatorError(t *testing.T) {
	evaluator := auditMocks.NewEvaluator(t)
	evaluator.EXPECT().Evaluate(mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
	app := newApp(fiber.MethodPost, "/audit", handlers.NewEvaluateHandler(testLogger(), evaluator))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/audit", bytes.NewReader(pngBytes)))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func moderationRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/moderation", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestScheduleModerationHandler_Scheduled(t *testing.T) {
	objects := storageMocks.NewObjectStore(t)
	scheduler := schedulerMocks.NewScheduler(t)
	jobID := uuid.New()

	objects.EXPECT().Get(mock.Anything, "2024/01/a.png").Return(pngBytes, nil).Once()
	scheduler.EXPECT().
		Schedule(mock.MatchedBy(func(b audit.ContentBlob) bool {
			return b.Key == "2024/01/a.png" && b.Fingerprint == audit.Fingerprint(pngBytes)
		}), mock.MatchedBy(func(r notification.Recipient) bool {
			return r.String() == "user:42"
		})).
		Return(jobID, nil).Once()

	app := newApp(fiber.MethodPost, "/moderation", handlers.NewScheduleModerationHandler(testLogger(), objects, scheduler))
	resp, err := app.Test(moderationRequest(t, map[string]interface{}{"object_key": "2024/01/a.png", "user_id": 42}))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	out := decode[response.ModerationOutput](t, resp)
	assert.Equal(t, jobID.String(), out.JobID)
	assert.Equal(t, response.StatusScheduled, out.Status)
}

func TestScheduleModerationHandler_Coalesced(t *testing.T) {
	objects := storageMocks.NewObjectStore(t)
	scheduler := schedulerMocks.NewScheduler(t)
	jobID := uuid.New()

	objects.EXPECT().Get(mock.Anything, "a.png").Return(pngBytes, nil).Once()
	scheduler.EXPECT().Schedule(mock.Anything, mock.Anything).Return(jobID, moderation.ErrDuplicateJob).Once()

	app := newApp(fiber.MethodPost, "/moderation", handlers.NewScheduleModerationHandler(testLogger(), objects, scheduler))
	resp, err := app.Test(moderationRequest(t, map[string]interface{}{"object_key": "a.png"}))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	out := decode[response.ModerationOutput](t, resp)
	assert.Equal(t, jobID.String(), out.JobID)
	assert.Equal(t, response.StatusCoalesced, out.Status)
}

func TestScheduleModerationHandler_Errors(t *testing.T) {
	tests := []struct {
		name        string
		getErr      error
		scheduleErr error
		status      int
	}{
		{name: "object missing", getErr: storage.ErrObjectNotFound, status: fiber.StatusNotFound},
		{name: "storage down", getErr: errors.New("connection reset"), status: fiber.StatusBadGateway},
		{name: "queue full", scheduleErr: moderation.ErrQueueFull, status: fiber.StatusServiceUnavailable},
		{name: "closed", scheduleErr: moderation.ErrSchedulerClosed, status: fiber.StatusServiceUnavailable},
		{name: "disabled", scheduleErr: moderation.ErrDisabled, status: fiber.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := storageMocks.NewObjectStore(t)
			scheduler := schedulerMocks.NewScheduler(t)
			if tt.getErr != nil {
				objects.EXPECT().Get(mock.Anything, "a.png").Return(nil, tt.getErr).Once()
			} else {
				objects.EXPECT().Get(mock.Anything, "a.png").Return(pngBytes, nil).Once()
				scheduler.EXPECT().Schedule(mock.Anything, mock.Anything).Return(uuid.Nil, tt.scheduleErr).Once()
			}

			app := newApp(fiber.MethodPost, "/moderation", handlers.NewScheduleModerationHandler(testLogger(), objects, scheduler))
			resp, err := app.Test(moderationRequest(t, map[string]interface{}{"object_key": "a.png"}))

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestScheduleModerationHandler_BadRequest(t *testing.T) {
	objects := storageMocks.NewObjectStore(t)
	scheduler := schedulerMocks.NewScheduler(t)
	app := newApp(fiber.MethodPost, "/moderation", handlers.NewScheduleModerationHandler(testLogger(), objects, scheduler))

	resp, err := app.Test(moderationRequest(t, map[string]interface{}{"object_key": "a.png", "user_id": 1, "device_id": "d1"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(moderationRequest(t, map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListClassifiersHandler(t *testing.T) {
	models := modelMocks.NewManager(t)
	scheduler := schedulerMocks.NewScheduler(t)
	models.EXPECT().Status().Return([]modelmanager.Status{
		{Kind: audit.KindNudity, State: modelmanager.StateReady, Classifier: "nudenet"},
		{Kind: audit.KindRegional, State: modelmanager.StateIdle},
		{Kind: audit.KindGeneral, State: modelmanager.StateUnavailable, Error: "endpoint unreachable"},
	}).Once()
	scheduler.EXPECT().Pending().Return(3).Once()

	app := newApp(fiber.MethodGet, "/classifiers",
		handlers.NewListClassifiersHandler(testLogger(), models, scheduler, true, "abc123def456"))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/classifiers", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[response.ClassifiersOutput](t, resp)
	assert.True(t, out.ModerationEnabled)
	assert.Equal(t, "abc123def456", out.PolicyDigest)
	assert.Equal(t, 3, out.Pending)
	require.Len(t, out.Classifiers, 3)
	assert.Equal(t, modelmanager.StateUnavailable, out.Classifiers[2].State)
	assert.Equal(t, "endpoint unreachable", out.Classifiers[2].Error)
}

func TestListNotificationsHandler(t *testing.T) {
	repo := notificationMocks.NewRepository(t)
	repo.EXPECT().
		ListByRecipient(mock.Anything, mock.MatchedBy(func(r notification.Recipient) bool {
			return r.String() == "user:42"
		}), true, 10).
		Return([]notification.Notification{{ID: 1, Type: notification.TypeModerationReject, Title: "Image removed"}}, nil).Once()

	app := newApp(fiber.MethodGet, "/notifications", handlers.NewListNotificationsHandler(testLogger(), repo))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications?user_id=42&unread=true&limit=10", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[[]notification.Notification](t, resp)
	require.Len(t, out, 1)
	assert.Equal(t, "Image removed", out[0].Title)
}

func TestListNotificationsHandler_InvalidRecipient(t *testing.T) {
	repo := notificationMocks.NewRepository(t)
	app := newApp(fiber.MethodGet, "/notifications", handlers.NewListNotificationsHandler(testLogger(), repo))

	for _, target := range []string{"/notifications", "/notifications?user_id=1&device_id=d1", "/notifications?user_id=abc"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestListNotificationsHandler_RepositoryError(t *testing.T) {
	repo := notificationMocks.NewRepository(t)
	repo.EXPECT().ListByRecipient(mock.Anything, mock.Anything, false, 50).Return(nil, errors.New("db down")).Once()
	app := newApp(fiber.MethodGet, "/notifications", handlers.NewListNotificationsHandler(testLogger(), repo))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications?device_id=d1", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestGetVersionHandler(t *testing.T) {
	app := newApp(fiber.MethodGet, "/version", handlers.NewGetVersionHandler(testLogger()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/version", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "TrustImage", out["app_name"])
}
