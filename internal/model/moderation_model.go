package model

import (
	"time"

	"github.com/google/uuid"
)

type BlockRelation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BlockerId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocker_blocked"`
	BlockedId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocker_blocked"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (BlockRelation) TableName() string {
	return "block_relations"
}

type Report struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReporterId uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemType   string    `gorm:"type:varchar(20);not null"`
	ItemId     string    `gorm:"type:varchar(64);not null;index"`
	Reason     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Report) TableName() string {
	return "reports"
}
