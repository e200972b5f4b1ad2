package contract

import (
	"context"
	"time"

	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, room *entity.ChatRoom) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error)

	// TouchIfNewer updates the preview and activity timestamp only when the
	// given timestamp is not older than the stored one, so out-of-order
	// touches never regress the visible preview.
	TouchIfNewer(ctx context.Context, roomId uuid.UUID, preview string, at time.Time) error
}
