package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"direct-chat-be/internal/dto"
	"direct-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModerationService struct {
	lastCaller uuid.UUID
	lastBlock  *dto.BlockUserRequest
	lastReport *dto.ReportItemRequest
	err        error
}

func (s *stubModerationService) BlockUser(ctx context.Context, blockerId uuid.UUID, req *dto.BlockUserRequest) error {
	s.lastCaller = blockerId
	s.lastBlock = req
	return s.err
}

func (s *stubModerationService) ReportItem(ctx context.Context, reporterId uuid.UUID, req *dto.ReportItemRequest) (*dto.ReportItemResponse, error) {
	s.lastCaller = reporterId
	s.lastReport = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReportItemResponse{ReportId: uuid.New()}, nil
}

func newModerationTestApp(svc *stubModerationService, verifier *stubVerifier) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	ctrl := NewModerationController(svc, serverutils.AuthMiddleware(verifier))
	ctrl.RegisterRoutes(app)
	return app
}

func TestBlockUserResolvesCallerFromToken(t *testing.T) {
	userId := uuid.New()
	svc := &stubModerationService{}
	app := newModerationTestApp(svc, &stubVerifier{token: "good", userId: userId})

	target := uuid.New()
	payload, _ := json.Marshal(dto.BlockUserRequest{BlockedUserId: target})
	req := httptest.NewRequest(http.MethodPost, "/block-user", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, userId, svc.lastCaller)
	require.NotNil(t, svc.lastBlock)
	assert.Equal(t, target, svc.lastBlock.BlockedUserId)
}

func TestBlockUserRequiresToken(t *testing.T) {
	app := newModerationTestApp(&stubModerationService{}, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodPost, "/block-user", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestReportItemValidatesItemType(t *testing.T) {
	app := newModerationTestApp(&stubModerationService{}, &stubVerifier{token: "good", userId: uuid.New()})

	payload, _ := json.Marshal(dto.ReportItemRequest{ItemType: "profile", ItemId: "x", Reason: "bad"})
	req := httptest.NewRequest(http.MethodPost, "/report-item", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, "INVALID_ARGUMENT", envelope.Kind)
}

func TestReportItemHappyPath(t *testing.T) {
	svc := &stubModerationService{}
	app := newModerationTestApp(svc, &stubVerifier{token: "good", userId: uuid.New()})

	payload, _ := json.Marshal(dto.ReportItemRequest{ItemType: "message", ItemId: uuid.NewString(), Reason: "spam"})
	req := httptest.NewRequest(http.MethodPost, "/report-item", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.True(t, envelope.Success)

	var data dto.ReportItemResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotEqual(t, uuid.Nil, data.ReportId)
}
