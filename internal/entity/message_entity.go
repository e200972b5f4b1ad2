package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a stored file reference carried by a message.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Url      string `json:"url"`
}

// Message belongs to one room. Text and IsEdited are mutable by the sender
// only; DeletedBy grows monotonically and never shrinks — deletion hides the
// message from one viewer without destroying the row.
type Message struct {
	Id               uuid.UUID
	ChatRoomId       uuid.UUID
	SenderId         uuid.UUID
	Text             string
	Attachments      []Attachment
	ReplyToMessageId *uuid.UUID
	IsEdited         bool
	IsPinned         bool
	DeletedBy        []uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// IsDeletedFor reports whether the viewer has hidden this message.
func (m *Message) IsDeletedFor(userId uuid.UUID) bool {
	for _, id := range m.DeletedBy {
		if id == userId {
			return true
		}
	}
	return false
}

// MarkDeletedFor appends the viewer to DeletedBy. Idempotent.
func (m *Message) MarkDeletedFor(userId uuid.UUID) bool {
	if m.IsDeletedFor(userId) {
		return false
	}
	m.DeletedBy = append(m.DeletedBy, userId)
	return true
}
