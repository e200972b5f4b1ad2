package entity

import (
	"time"

	"github.com/google/uuid"
)

// BlockRelation records that blocker no longer wants contact from blocked.
// One row per ordered pair; there is no unblock operation.
type BlockRelation struct {
	Id        uuid.UUID
	BlockerId uuid.UUID
	BlockedId uuid.UUID
	CreatedAt time.Time
}

// Reportable item types accepted by the moderation ledger.
const (
	ReportItemTypeMessage = "message"
	ReportItemTypeChat    = "chat"
)

// Report is an append-only abuse report. ItemId is kept as an opaque string;
// no existence check is performed against messages or rooms.
type Report struct {
	Id         uuid.UUID
	ReporterId uuid.UUID
	ItemType   string
	ItemId     string
	Reason     string
	CreatedAt  time.Time
}
