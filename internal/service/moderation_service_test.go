package service

import (
	"context"
	"errors"
	"testing"

	"direct-chat-be/internal/dto"
	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent    int
	sendErr error
}

func (m *recordingMailer) SendReportNotice(itemType, itemId, reason, reporterId string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent++
	return nil
}

func newTestModerationService(uow *fakeUow, mail *recordingMailer) IModerationService {
	return NewModerationService(&fakeFactory{uow: uow}, mail, nil, nopLogger{})
}

func TestBlockUserIsIdempotent(t *testing.T) {
	uow := newFakeUow()
	svc := newTestModerationService(uow, &recordingMailer{})

	blocker := uuid.New()
	blocked := uuid.New()

	require.NoError(t, svc.BlockUser(context.Background(), blocker, &dto.BlockUserRequest{BlockedUserId: blocked}))
	require.NoError(t, svc.BlockUser(context.Background(), blocker, &dto.BlockUserRequest{BlockedUserId: blocked}))

	assert.Len(t, uow.blockRepo.blocks, 1)
}

func TestBlockUserIsDirectional(t *testing.T) {
	uow := newFakeUow()
	svc := newTestModerationService(uow, &recordingMailer{})

	userA := uuid.New()
	userB := uuid.New()

	require.NoError(t, svc.BlockUser(context.Background(), userA, &dto.BlockUserRequest{BlockedUserId: userB}))
	require.NoError(t, svc.BlockUser(context.Background(), userB, &dto.BlockUserRequest{BlockedUserId: userA}))

	assert.Len(t, uow.blockRepo.blocks, 2)
}

func TestBlockUserRejectsSelf(t *testing.T) {
	uow := newFakeUow()
	svc := newTestModerationService(uow, &recordingMailer{})

	userA := uuid.New()
	err := svc.BlockUser(context.Background(), userA, &dto.BlockUserRequest{BlockedUserId: userA})
	assert.Equal(t, serverutils.KindInvalidArgument, appErrKind(t, err))
}

func TestReportItemPersistsAndNotifies(t *testing.T) {
	uow := newFakeUow()
	mail := &recordingMailer{}
	svc := newTestModerationService(uow, mail)

	reporter := uuid.New()
	res, err := svc.ReportItem(context.Background(), reporter, &dto.ReportItemRequest{
		ItemType: entity.ReportItemTypeMessage,
		ItemId:   uuid.NewString(),
		Reason:   "spam",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.ReportId)

	require.Len(t, uow.reportRepo.reports, 1)
	assert.Equal(t, reporter, uow.reportRepo.reports[0].ReporterId)
	assert.Equal(t, 1, mail.sent)
}

func TestReportItemSurvivesMailFailure(t *testing.T) {
	uow := newFakeUow()
	mail := &recordingMailer{sendErr: errors.New("smtp down")}
	svc := newTestModerationService(uow, mail)

	_, err := svc.ReportItem(context.Background(), uuid.New(), &dto.ReportItemRequest{
		ItemType: entity.ReportItemTypeChat,
		ItemId:   uuid.NewString(),
		Reason:   "harassment",
	})
	require.NoError(t, err)
	assert.Len(t, uow.reportRepo.reports, 1)
}

func TestReportItemRejectsUnknownType(t *testing.T) {
	uow := newFakeUow()
	svc := newTestModerationService(uow, &recordingMailer{})

	_, err := svc.ReportItem(context.Background(), uuid.New(), &dto.ReportItemRequest{
		ItemType: "user",
		ItemId:   uuid.NewString(),
		Reason:   "whatever",
	})
	assert.Equal(t, serverutils.KindInvalidArgument, appErrKind(t, err))
	assert.Empty(t, uow.reportRepo.reports)
}
