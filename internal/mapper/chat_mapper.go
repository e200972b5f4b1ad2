package mapper

import (
	"encoding/json"
	"time"

	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Room Mappers

func (m *ChatMapper) ChatRoomToEntity(r *model.ChatRoom) *entity.ChatRoom {
	if r == nil {
		return nil
	}

	return &entity.ChatRoom{
		Id:                 r.Id,
		ParticipantA:       r.ParticipantA,
		ParticipantB:       r.ParticipantB,
		PairKey:            r.PairKey,
		LastMessagePreview: r.LastMessagePreview,
		LastActivityAt:     r.LastActivityAt,
		CreatedAt:          r.CreatedAt,
	}
}

func (m *ChatMapper) ChatRoomToModel(r *entity.ChatRoom) *model.ChatRoom {
	if r == nil {
		return nil
	}

	return &model.ChatRoom{
		Id:                 r.Id,
		ParticipantA:       r.ParticipantA,
		ParticipantB:       r.ParticipantB,
		PairKey:            r.PairKey,
		LastMessagePreview: r.LastMessagePreview,
		LastActivityAt:     r.LastActivityAt,
		CreatedAt:          r.CreatedAt,
	}
}

// Message Mappers
//
// Attachments and DeletedBy live in JSONB columns. An unreadable column is
// mapped to the empty value instead of failing the whole read — the row is
// still useful without its annotations.

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var attachments []entity.Attachment
	if len(msg.Attachments) > 0 {
		_ = json.Unmarshal(msg.Attachments, &attachments)
	}

	var deletedBy []uuid.UUID
	if len(msg.DeletedBy) > 0 {
		_ = json.Unmarshal(msg.DeletedBy, &deletedBy)
	}

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	return &entity.Message{
		Id:               msg.Id,
		ChatRoomId:       msg.ChatRoomId,
		SenderId:         msg.SenderId,
		Text:             msg.Text,
		Attachments:      attachments,
		ReplyToMessageId: msg.ReplyToMessageId,
		IsEdited:         msg.IsEdited,
		IsPinned:         msg.IsPinned,
		DeletedBy:        deletedBy,
		CreatedAt:        msg.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	attachments := msg.Attachments
	if attachments == nil {
		attachments = []entity.Attachment{}
	}
	attachmentsJson, _ := json.Marshal(attachments)

	deletedBy := msg.DeletedBy
	if deletedBy == nil {
		deletedBy = []uuid.UUID{}
	}
	deletedByJson, _ := json.Marshal(deletedBy)

	var updatedAt time.Time
	if msg.UpdatedAt != nil {
		updatedAt = *msg.UpdatedAt
	}

	return &model.Message{
		Id:               msg.Id,
		ChatRoomId:       msg.ChatRoomId,
		SenderId:         msg.SenderId,
		Text:             msg.Text,
		Attachments:      datatypes.JSON(attachmentsJson),
		ReplyToMessageId: msg.ReplyToMessageId,
		IsEdited:         msg.IsEdited,
		IsPinned:         msg.IsPinned,
		DeletedBy:        datatypes.JSON(deletedByJson),
		CreatedAt:        msg.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}
