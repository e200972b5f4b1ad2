package unitofwork

import (
	"context"

	"direct-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatRoomRepository() contract.ChatRoomRepository
	MessageRepository() contract.MessageRepository
	BlockRepository() contract.BlockRepository
	ReportRepository() contract.ReportRepository
}
