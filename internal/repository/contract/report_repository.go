package contract

import (
	"context"

	"direct-chat-be/internal/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
}
