package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatRoom struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantA       uuid.UUID `gorm:"type:uuid;not null;index"`
	ParticipantB       uuid.UUID `gorm:"type:uuid;not null;index"`
	PairKey            string    `gorm:"type:varchar(80);not null;uniqueIndex"`
	LastMessagePreview string    `gorm:"type:varchar(120)"`
	LastActivityAt     time.Time `gorm:"not null;index"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}
