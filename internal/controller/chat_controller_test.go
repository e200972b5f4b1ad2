package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
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

// stubVerifier accepts exactly one token and maps it to a fixed user.
type stubVerifier struct {
	token  string
	userId uuid.UUID
}

func (v *stubVerifier) Verify(token string) (uuid.UUID, error) {
	if token != v.token {
		return uuid.Nil, errors.New("invalid token")
	}
	return v.userId, nil
}

type stubChatService struct {
	lastCaller uuid.UUID
	lastSend   *dto.SendMessageRequest
	err        error
}

func (s *stubChatService) CreateRoom(ctx context.Context, callerId uuid.UUID, req *dto.CreateChatRoomRequest) (*dto.CreateChatRoomResponse, error) {
	s.lastCaller = callerId
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CreateChatRoomResponse{ChatRoomId: uuid.New()}, nil
}

func (s *stubChatService) ListConnections(ctx context.Context, userId uuid.UUID) (*dto.ConnectionsResponse, error) {
	s.lastCaller = userId
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ConnectionsResponse{
		Connections: []dto.ConnectionResponse{},
		Requests:    []dto.ConnectionResponse{},
	}, nil
}

func (s *stubChatService) ListMessages(ctx context.Context, viewerId uuid.UUID, roomId uuid.UUID) ([]*dto.MessageResponse, error) {
	s.lastCaller = viewerId
	if s.err != nil {
		return nil, s.err
	}
	return []*dto.MessageResponse{}, nil
}

func (s *stubChatService) SendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	s.lastCaller = senderId
	s.lastSend = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MessageResponse{Id: uuid.New(), Text: req.Text, Direction: dto.DirectionMine}, nil
}

func (s *stubChatService) EditMessage(ctx context.Context, callerId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error) {
	s.lastCaller = callerId
	if s.err != nil {
		return nil, s.err
	}
	return &dto.MessageResponse{Id: req.Id, Text: req.NewText, IsEdited: true}, nil
}

func (s *stubChatService) SoftDeleteMessage(ctx context.Context, callerId uuid.UUID, messageId uuid.UUID) error {
	s.lastCaller = callerId
	return s.err
}

func (s *stubChatService) SetPinned(ctx context.Context, callerId uuid.UUID, messageId uuid.UUID, pinned bool) error {
	s.lastCaller = callerId
	return s.err
}

func newTestApp(svc *stubChatService, verifier *stubVerifier) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	ctrl := NewChatController(svc, serverutils.AuthMiddleware(verifier))
	ctrl.RegisterRoutes(app)
	return app
}

func decodeEnvelope(t *testing.T, res *http.Response) serverutils.BaseResponse[json.RawMessage] {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var envelope serverutils.BaseResponse[json.RawMessage]
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestChatEndpointsRejectMissingToken(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/chat-connections", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.False(t, envelope.Success)
	assert.Equal(t, "UNAUTHORIZED", envelope.Kind)
}

func TestChatEndpointsRejectUnknownToken(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/chat-connections", nil)
	req.Header.Set("Authorization", "Bearer forged")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestChatConnectionsResolvesCallerFromToken(t *testing.T) {
	userId := uuid.New()
	svc := &stubChatService{}
	app := newTestApp(svc, &stubVerifier{token: "good", userId: userId})

	req := httptest.NewRequest(http.MethodGet, "/chat-connections", nil)
	req.Header.Set("Authorization", "Bearer good")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, userId, svc.lastCaller)

	envelope := decodeEnvelope(t, res)
	assert.True(t, envelope.Success)
}

func TestCreateChatRoomValidatesBody(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubVerifier{token: "good", userId: uuid.New()})

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/create-chat-room", body)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, "INVALID_ARGUMENT", envelope.Kind)
}

func TestCreateChatRoomHappyPath(t *testing.T) {
	svc := &stubChatService{}
	app := newTestApp(svc, &stubVerifier{token: "good", userId: uuid.New()})

	payload, _ := json.Marshal(dto.CreateChatRoomRequest{OtherParticipantId: uuid.New()})
	req := httptest.NewRequest(http.MethodPost, "/create-chat-room", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.True(t, envelope.Success)

	var data dto.CreateChatRoomResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotEqual(t, uuid.Nil, data.ChatRoomId)
}

func TestServiceErrorsMapToStatusCodes(t *testing.T) {
	svc := &stubChatService{err: serverutils.Forbidden("not a participant of this chat room")}
	app := newTestApp(svc, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/get-messages/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer good")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, "FORBIDDEN", envelope.Kind)
	assert.Equal(t, "not a participant of this chat room", envelope.Message)
}

func TestGetMessagesRejectsMalformedId(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/get-messages/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer good")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSendMessageParsesMultipartForm(t *testing.T) {
	svc := &stubChatService{}
	app := newTestApp(svc, &stubVerifier{token: "good", userId: uuid.New()})

	roomId := uuid.New()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("chatRoomId", roomId.String()))
	require.NoError(t, writer.WriteField("text", "hello with file"))
	part, err := writer.CreateFormFile("attachments", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/send-message", &buf)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.NotNil(t, svc.lastSend)
	assert.Equal(t, roomId, svc.lastSend.ChatRoomId)
	assert.Equal(t, "hello with file", svc.lastSend.Text)
	require.Len(t, svc.lastSend.Attachments, 1)
	assert.Equal(t, "photo.png", svc.lastSend.Attachments[0].Name)
	assert.Equal(t, []byte("png-bytes"), svc.lastSend.Attachments[0].Data)
}

func TestSendMessageRequiresRoomId(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubVerifier{token: "good", userId: uuid.New()})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("text", "orphan"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/send-message", &buf)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPinMessageRequiresExplicitFlag(t *testing.T) {
	app := newTestApp(&stubChatService{}, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodPut, "/pin-message/"+uuid.NewString(), bytes.NewBufferString(`{}`))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPinMessageAcceptsFalse(t *testing.T) {
	svc := &stubChatService{}
	app := newTestApp(svc, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodPut, "/pin-message/"+uuid.NewString(), bytes.NewBufferString(`{"pin": false}`))
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDeleteMessageConfirmation(t *testing.T) {
	svc := &stubChatService{}
	app := newTestApp(svc, &stubVerifier{token: "good", userId: uuid.New()})

	req := httptest.NewRequest(http.MethodDelete, "/delete-message/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer good")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	envelope := decodeEnvelope(t, res)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Success delete message", envelope.Message)
}
