package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"direct-chat-be/internal/dto"
	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/pkg/blobstore"
	"direct-chat-be/internal/pkg/keylock"
	"direct-chat-be/internal/pkg/logger"
	"direct-chat-be/internal/pkg/serverutils"
	"direct-chat-be/internal/repository/specification"
	"direct-chat-be/internal/repository/unitofwork"
	"direct-chat-be/pkg/cache"
	"direct-chat-be/pkg/events"
	pktNats "direct-chat-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	// Attachment bucket inside the blob store.
	attachmentBucket = "chat-attachments"

	// Preview length shown in the connections listing.
	previewMaxLen = 100
)

type IChatService interface {
	CreateRoom(ctx context.Context, callerId uuid.UUID, req *dto.CreateChatRoomRequest) (*dto.CreateChatRoomResponse, error)
	ListConnections(ctx context.Context, userId uuid.UUID) (*dto.ConnectionsResponse, error)
	ListMessages(ctx context.Context, viewerId uuid.UUID, roomId uuid.UUID) ([]*dto.MessageResponse, error)
	SendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	EditMessage(ctx context.Context, callerId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error)
	SoftDeleteMessage(ctx context.Context, callerId uuid.UUID, messageId uuid.UUID) error
	SetPinned(ctx context.Context, callerId uuid.UUID, messageId uuid.UUID, pinned bool) error
}

// ChatOptions toggles the authorization behaviors the legacy backend left
// open. Defaults are the strict variants; the loose ones exist only for
// compatibility until product signs off.
type ChatOptions struct {
	// StrictMutationChecks requires room membership for pin/unpin and
	// per-user delete.
	StrictMutationChecks bool

	// EnforceBlocks makes an existing block relation (either direction)
	// reject sends and room creation.
	EnforceBlocks bool
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobStore        blobstore.BlobStore
	pairLocks        *keylock.KeyedMutex
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	roomsCache       *cache.RoomsCache
	sysLogger        logger.ILogger
	opts             ChatOptions
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore blobstore.BlobStore,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	roomsCache *cache.RoomsCache,
	sysLogger logger.ILogger,
	opts ChatOptions,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		blobStore:        blobStore,
		pairLocks:        keylock.New(),
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		roomsCache:       roomsCache,
		sysLogger:        sysLogger,
		opts:             opts,
	}
}

// CreateRoom finds or creates the single room for the unordered pair
// (callerId, otherId). The per-pair lock plus the unique pair_key column make
// this idempotent under concurrent calls: a duplicate insert is treated as
// "someone else won" and resolved by re-reading.
func (s *chatService) CreateRoom(ctx context.Context, callerId uuid.UUID, req *dto.CreateChatRoomRequest) (*dto.CreateChatRoomResponse, error) {
	otherId := req.OtherParticipantId
	if otherId == uuid.Nil {
		return nil, serverutils.InvalidArgument("otherParticipantId is required")
	}
	if otherId == callerId {
		return nil, serverutils.InvalidArgument("cannot open a chat room with yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if s.opts.EnforceBlocks {
		blocked, err := uow.BlockRepository().ExistsBetween(ctx, callerId, otherId)
		if err != nil {
			return nil, serverutils.Internal(err)
		}
		if blocked {
			return nil, serverutils.Forbidden("a block exists between these users")
		}
	}

	pairKey := entity.PairKeyFor(callerId, otherId)
	unlock := s.pairLocks.Lock(pairKey)
	defer unlock()

	existing, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByPairKey{PairKey: pairKey})
	if err != nil {
		return nil, serverutils.Internal(err)
	}
	if existing != nil {
		return &dto.CreateChatRoomResponse{ChatRoomId: existing.Id}, nil
	}

	a, b := entity.CanonicalPair(callerId, otherId)
	room := entity.ChatRoom{
		Id:             uuid.New(),
		ParticipantA:   a,
		ParticipantB:   b,
		PairKey:        pairKey,
		LastActivityAt: time.Now(),
		CreatedAt:      time.Now(),
	}

	if err := uow.ChatRoomRepository().Create(ctx, &room); err != nil {
		if isDuplicateKey(err) {
			// Another writer inserted the pair first; its room wins.
			winner, findErr := uow.ChatRoomRepository().FindOne(ctx, specification.ByPairKey{PairKey: pairKey})
			if findErr != nil || winner == nil {
				return nil, serverutils.Internal(err)
			}
			return &dto.CreateChatRoomResponse{ChatRoomId: winner.Id}, nil
		}
		return nil, serverutils.Internal(err)
	}

	s.notifyRoomActivity(ctx, room.Id, []uuid.UUID{callerId, otherId})
	s.publishEvent(ctx, events.TypeChatRoomCreated, map[string]interface{}{
		"chat_room_id": room.Id,
		"user_id":      callerId,
		"other_id":     otherId,
	})

	return &dto.CreateChatRoomResponse{ChatRoomId: room.Id}, nil
}

// ListConnections returns the caller's rooms, most recently active first.
// Rooms whose stored pair does not yield a distinct other participant are
// silently omitted instead of failing the whole listing.
func (s *chatService) ListConnections(ctx context.Context, userId uuid.UUID) (*dto.ConnectionsResponse, error) {
	if cached, ok := s.roomsCache.Get(ctx, userId); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rooms, err := uow.ChatRoomRepository().FindAll(ctx,
		specification.WithParticipant{UserID: userId},
		specification.OrderByLastActivityDesc{},
	)
	if err != nil {
		return nil, serverutils.Internal(err)
	}

	connections := make([]dto.ConnectionResponse, 0, len(rooms))
	for _, room := range rooms {
		other := room.OtherParticipant(userId)
		if other == uuid.Nil {
			continue
		}
		connections = append(connections, dto.ConnectionResponse{
			ChatRoomId:         room.Id,
			OtherParticipantId: other,
			LastMessagePreview: room.LastMessagePreview,
			LastActivityAt:     room.LastActivityAt,
		})
	}

	res := &dto.ConnectionsResponse{
		Connections: connections,
		Requests:    []dto.ConnectionResponse{},
	}
	s.roomsCache.Set(ctx, userId, res)

	return res, nil
}

func (s *chatService) ListMessages(ctx context.Context, viewerId uuid.UUID, roomId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.requireParticipant(ctx, uow, roomId, viewerId); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatRoomID{ChatRoomID: roomId},
		specification.OrderByCreatedAtAsc{},
	)
	if err != nil {
		return nil, serverutils.Internal(err)
	}

	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		if msg.IsDeletedFor(viewerId) {
			continue
		}
		res = append(res, toMessageResponse(msg, viewerId))
	}

	return res, nil
}

// SendMessage uploads attachments, inserts the message, and touches the room
// summary. All uploads must succeed before the row becomes visible; a failed
// upload aborts the send without rolling back earlier files (at-least-once
// storage cost). A retried send after an ambiguous failure may duplicate the
// message — the documented at-least-once delivery behavior.
func (s *chatService) SendMessage(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if strings.TrimSpace(req.Text) == "" && len(req.Attachments) == 0 {
		return nil, serverutils.InvalidArgument("message needs text or at least one attachment")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := s.requireParticipant(ctx, uow, req.ChatRoomId, senderId)
	if err != nil {
		return nil, err
	}

	if s.opts.EnforceBlocks {
		other := room.OtherParticipant(senderId)
		blocked, err := uow.BlockRepository().ExistsBetween(ctx, senderId, other)
		if err != nil {
			return nil, serverutils.Internal(err)
		}
		if blocked {
			return nil, serverutils.Forbidden("a block exists between these users")
		}
	}

	now := time.Now()

	attachments := make([]entity.Attachment, 0, len(req.Attachments))
	for _, file := range req.Attachments {
		path := fmt.Sprintf("%s/%s/%d-%s", room.Id, senderId, now.UnixMilli(), file.Name)
		url, err := s.blobStore.Put(ctx, attachmentBucket, path, file.Data, file.MimeType)
		if err != nil {
			return nil, serverutils.UploadFailed(fmt.Sprintf("failed to store attachment %q", file.Name), err)
		}
		attachments = append(attachments, entity.Attachment{
			Name:     file.Name,
			MimeType: file.MimeType,
			Url:      url,
		})
	}

	msg := entity.Message{
		Id:               uuid.New(),
		ChatRoomId:       room.Id,
		SenderId:         senderId,
		Text:             req.Text,
		Attachments:      attachments,
		ReplyToMessageId: req.ReplyToMessageId,
		DeletedBy:        []uuid.UUID{},
		CreatedAt:        now,
	}

	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return nil, serverutils.Internal(err)
	}

	preview := buildPreview(msg.Text, len(msg.Attachments))
	if err := uow.ChatRoomRepository().TouchIfNewer(ctx, room.Id, preview, msg.CreatedAt); err != nil {
		// The message is persisted; a stale preview self-heals on the next send.
		s.sysLogger.Warn("ChatService", "failed to touch room after send", map[string]interface{}{
			"chat_room_id": room.Id,
			"error":        err.Error(),
		})
	}

	s.notifyRoomActivity(ctx, room.Id, []uuid.UUID{room.ParticipantA, room.ParticipantB})
	s.publishEvent(ctx, events.TypeMessageSent, map[string]interface{}{
		"chat_room_id": room.Id,
		"message_id":   msg.Id,
		"user_id":      room.OtherParticipant(senderId),
		"actor_id":     senderId,
	})

	return toMessageResponse(&msg, senderId), nil
}

func (s *chatService) EditMessage(ctx context.Context, callerId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error) {
	if strings.TrimSpace(req.NewText) == "" {
		return nil, serverutils.InvalidArgument("newText is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, serverutils.Internal(err)
	}
	if msg == nil {
		return nil, serverutils.NotFound("message not found")
	}
	if msg.SenderId != callerId {
		return nil, serverutils.Forbidden("only the sender can edit a message")
	}

	now := time.Now()
	msg.Text = req.NewText
	msg.IsEdited = true
	msg.UpdatedAt = &now

	if err := uow.MessageRepository().Update(ctx, msg); err != nil {
		return nil, serverutils.Internal(err)
	}

	return toMessageResponse(msg, callerId), nil
}

// SoftDeleteMessage hides the message from the caller only. Idempotent: a
// repeat delete is a no-op success. The row itself is never removed.
func (s *chatService) SoftDeleteMessage(ctx context.Context, callerId uuid.UUID, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return serverutils.Internal(err)
	}
	if msg == nil {
		return serverutils.NotFound("message not found")
	}

	if s.opts.StrictMutationChecks {
		if _, err := s.requireParticipant(ctx, uow, msg.ChatRoomId, callerId); err != nil {
			return err
		}
	}

	if !msg.MarkDeletedFor(callerId) {
		return nil
	}

	if err := uow.MessageRepository().Update(ctx, msg); err != nil {
		return serverutils.Internal(err)
	}
	return nil
}

func (s *chatService) SetPinned(ctx context.Context, callerId uuid.UUID, messageId uuid.UUID, pinned bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return serverutils.Internal(err)
	}
	if msg == nil {
		return serverutils.NotFound("message not found")
	}

	if s.opts.StrictMutationChecks {
		if _, err := s.requireParticipant(ctx, uow, msg.ChatRoomId, callerId); err != nil {
			return err
		}
	}

	if msg.IsPinned == pinned {
		return nil
	}

	msg.IsPinned = pinned
	if err := uow.MessageRepository().Update(ctx, msg); err != nil {
		return serverutils.Internal(err)
	}
	return nil
}

// requireParticipant loads the room and checks membership.
func (s *chatService) requireParticipant(ctx context.Context, uow unitofwork.UnitOfWork, roomId, userId uuid.UUID) (*entity.ChatRoom, error) {
	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, serverutils.Internal(err)
	}
	if room == nil {
		return nil, serverutils.NotFound("chat room not found")
	}
	if !room.HasParticipant(userId) {
		return nil, serverutils.Forbidden("not a participant of this chat room")
	}
	return room, nil
}

// notifyRoomActivity pushes a room-activity message onto the internal bus so
// the consumer can invalidate cached connection listings for both users.
func (s *chatService) notifyRoomActivity(ctx context.Context, roomId uuid.UUID, participants []uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.PublishRoomActivity(ctx, dto.RoomActivityMessage{
		ChatRoomId:   roomId,
		Participants: participants,
	}); err != nil {
		s.sysLogger.Warn("ChatService", "failed to publish room activity", map[string]interface{}{
			"chat_room_id": roomId,
			"error":        err.Error(),
		})
	}
}

// publishEvent emits a domain event for the notification system. Best effort:
// the request never fails because the event bus is down.
func (s *chatService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("ChatService", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func buildPreview(text string, attachmentCount int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if attachmentCount == 1 {
			return "1 file"
		}
		return fmt.Sprintf("%d files", attachmentCount)
	}

	runes := []rune(trimmed)
	if len(runes) <= previewMaxLen {
		return trimmed
	}
	return string(runes[:previewMaxLen])
}

func toMessageResponse(msg *entity.Message, viewerId uuid.UUID) *dto.MessageResponse {
	direction := dto.DirectionTheirs
	if msg.SenderId == viewerId {
		direction = dto.DirectionMine
	}

	attachments := make([]dto.AttachmentResponse, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		attachments = append(attachments, dto.AttachmentResponse{
			Name:     a.Name,
			MimeType: a.MimeType,
			Url:      a.Url,
		})
	}

	return &dto.MessageResponse{
		Id:               msg.Id,
		ChatRoomId:       msg.ChatRoomId,
		SenderId:         msg.SenderId,
		Text:             msg.Text,
		Attachments:      attachments,
		ReplyToMessageId: msg.ReplyToMessageId,
		Direction:        direction,
		IsEdited:         msg.IsEdited,
		IsPinned:         msg.IsPinned,
		CreatedAt:        msg.CreatedAt,
	}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "duplicated key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
