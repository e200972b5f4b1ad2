package dto

import (
	"time"

	"github.com/google/uuid"
)

// Message direction relative to the requesting viewer.
const (
	DirectionMine   = "mine"
	DirectionTheirs = "theirs"
)

type CreateChatRoomRequest struct {
	OtherParticipantId uuid.UUID `json:"otherParticipantId" validate:"required"`
}

type CreateChatRoomResponse struct {
	ChatRoomId uuid.UUID `json:"chatRoomId"`
}

// ConnectionResponse is one row of the chat-connections listing.
type ConnectionResponse struct {
	ChatRoomId         uuid.UUID `json:"chatRoomId"`
	OtherParticipantId uuid.UUID `json:"otherParticipantId"`
	LastMessagePreview string    `json:"lastMessagePreview"`
	LastActivityAt     time.Time `json:"lastActivityAt"`
}

// ConnectionsResponse mirrors the legacy payload shape. Requests is always
// empty: chat requests were never carried over from the old client contract,
// but the key stays so existing clients keep parsing.
type ConnectionsResponse struct {
	Connections []ConnectionResponse `json:"connections"`
	Requests    []ConnectionResponse `json:"requests"`
}

type AttachmentResponse struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Url      string `json:"url"`
}

type MessageResponse struct {
	Id               uuid.UUID            `json:"id"`
	ChatRoomId       uuid.UUID            `json:"chatRoomId"`
	SenderId         uuid.UUID            `json:"senderId"`
	Text             string               `json:"text"`
	Attachments      []AttachmentResponse `json:"attachments"`
	ReplyToMessageId *uuid.UUID           `json:"replyToMessageId,omitempty"`
	Direction        string               `json:"direction"`
	IsEdited         bool                 `json:"isEdited"`
	IsPinned         bool                 `json:"isPinned"`
	CreatedAt        time.Time            `json:"createdAt"`
}

// AttachmentUpload carries one multipart file from the gateway to the service.
type AttachmentUpload struct {
	Name     string
	MimeType string
	Data     []byte
}

type SendMessageRequest struct {
	ChatRoomId       uuid.UUID `json:"chatRoomId" form:"chatRoomId" validate:"required"`
	Text             string    `json:"text" form:"text"`
	ReplyToMessageId *uuid.UUID
	Attachments      []AttachmentUpload
}

type PinMessageRequest struct {
	Pin *bool `json:"pin" validate:"required"`
}

type EditMessageRequest struct {
	Id      uuid.UUID
	NewText string `json:"newText" validate:"required"`
}

// RoomActivityMessage is the internal bus payload published after a send or
// room creation; the consumer invalidates the cached connections listing for
// both participants.
type RoomActivityMessage struct {
	ChatRoomId   uuid.UUID   `json:"chat_room_id"`
	Participants []uuid.UUID `json:"participants"`
}
