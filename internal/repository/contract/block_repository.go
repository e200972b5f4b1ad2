package contract

import (
	"context"

	"direct-chat-be/internal/entity"

	"github.com/google/uuid"
)

type BlockRepository interface {
	Create(ctx context.Context, block *entity.BlockRelation) error

	// Exists checks the ordered pair (blocker, blocked).
	Exists(ctx context.Context, blockerId, blockedId uuid.UUID) (bool, error)

	// ExistsBetween checks either direction; used when block enforcement is on.
	ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
}
