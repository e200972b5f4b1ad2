package service

import (
	"context"
	"time"

	"direct-chat-be/internal/dto"
	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/pkg/logger"
	"direct-chat-be/internal/pkg/mailer"
	"direct-chat-be/internal/pkg/serverutils"
	"direct-chat-be/internal/repository/unitofwork"
	"direct-chat-be/pkg/events"
	pktNats "direct-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IModerationService interface {
	BlockUser(ctx context.Context, blockerId uuid.UUID, req *dto.BlockUserRequest) error
	ReportItem(ctx context.Context, reporterId uuid.UUID, req *dto.ReportItemRequest) (*dto.ReportItemResponse, error)
}

type moderationService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	sysLogger      logger.ILogger
}

func NewModerationService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IModerationService {
	return &moderationService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
	}
}

// BlockUser records a one-directional block. Blocking the same user twice is
// a no-op success.
func (s *moderationService) BlockUser(ctx context.Context, blockerId uuid.UUID, req *dto.BlockUserRequest) error {
	if req.BlockedUserId == uuid.Nil {
		return serverutils.InvalidArgument("blockedUserId is required")
	}
	if req.BlockedUserId == blockerId {
		return serverutils.InvalidArgument("cannot block yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	exists, err := uow.BlockRepository().Exists(ctx, blockerId, req.BlockedUserId)
	if err != nil {
		return serverutils.Internal(err)
	}
	if exists {
		return nil
	}

	block := entity.BlockRelation{
		Id:        uuid.New(),
		BlockerId: blockerId,
		BlockedId: req.BlockedUserId,
		CreatedAt: time.Now(),
	}
	if err := uow.BlockRepository().Create(ctx, &block); err != nil {
		return serverutils.Internal(err)
	}

	s.publishEvent(ctx, events.TypeUserBlocked, map[string]interface{}{
		"blocker_id": blockerId,
		"blocked_id": req.BlockedUserId,
	})

	return nil
}

// ReportItem appends an abuse report. The referenced item is not resolved or
// validated against the database; moderators work from the raw reference.
func (s *moderationService) ReportItem(ctx context.Context, reporterId uuid.UUID, req *dto.ReportItemRequest) (*dto.ReportItemResponse, error) {
	if req.ItemType != entity.ReportItemTypeMessage && req.ItemType != entity.ReportItemTypeChat {
		return nil, serverutils.InvalidArgument("itemType must be \"message\" or \"chat\"")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	report := entity.Report{
		Id:         uuid.New(),
		ReporterId: reporterId,
		ItemType:   req.ItemType,
		ItemId:     req.ItemId,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	if err := uow.ReportRepository().Create(ctx, &report); err != nil {
		return nil, serverutils.Internal(err)
	}

	// Notify the moderation inbox. The report is already persisted, so a
	// mail failure is logged and swallowed.
	if s.emailService != nil {
		if err := s.emailService.SendReportNotice(report.ItemType, report.ItemId, report.Reason, reporterId.String()); err != nil {
			s.sysLogger.Warn("ModerationService", "failed to send report notice, continuing", map[string]interface{}{
				"report_id": report.Id,
				"error":     err.Error(),
			})
		}
	}

	s.publishEvent(ctx, events.TypeItemReported, map[string]interface{}{
		"report_id":   report.Id,
		"reporter_id": reporterId,
		"item_type":   report.ItemType,
		"item_id":     report.ItemId,
	})

	return &dto.ReportItemResponse{ReportId: report.Id}, nil
}

func (s *moderationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("ModerationService", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
