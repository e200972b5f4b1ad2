package implementation

import (
	"context"

	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/mapper"
	"direct-chat-be/internal/model"
	"direct-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ModerationMapper
}

func NewBlockRepository(db *gorm.DB) contract.BlockRepository {
	return &BlockRepositoryImpl{
		db:     db,
		mapper: mapper.NewModerationMapper(),
	}
}

func (r *BlockRepositoryImpl) Create(ctx context.Context, block *entity.BlockRelation) error {
	m := r.mapper.BlockRelationToModel(block)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*block = *r.mapper.BlockRelationToEntity(m)
	return nil
}

func (r *BlockRepositoryImpl) Exists(ctx context.Context, blockerId, blockedId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BlockRelation{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerId, blockedId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BlockRepositoryImpl) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BlockRelation{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
