package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatRoomId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	SenderId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Text             string         `gorm:"type:text"`
	Attachments      datatypes.JSON `gorm:"type:jsonb"`
	ReplyToMessageId *uuid.UUID     `gorm:"type:uuid"`
	IsEdited         bool           `gorm:"not null;default:false"`
	IsPinned         bool           `gorm:"not null;default:false"`
	DeletedBy        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (Message) TableName() string {
	return "messages"
}
