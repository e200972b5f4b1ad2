package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatRoomID struct {
	ChatRoomID uuid.UUID
}

func (s ByChatRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_room_id = ?", s.ChatRoomID)
}

type ByPairKey struct {
	PairKey string
}

func (s ByPairKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pair_key = ?", s.PairKey)
}

type WithParticipant struct {
	UserID uuid.UUID
}

func (s WithParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("participant_a = ? OR participant_b = ?", s.UserID, s.UserID)
}

type OrderByCreatedAtAsc struct{}

func (s OrderByCreatedAtAsc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

type OrderByLastActivityDesc struct{}

func (s OrderByLastActivityDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("last_activity_at DESC")
}

type OnlyPinned struct{}

func (s OnlyPinned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_pinned = ?", true)
}
