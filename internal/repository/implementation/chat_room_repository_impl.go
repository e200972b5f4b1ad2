package implementation

import (
	"context"
	"errors"
	"time"

	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/mapper"
	"direct-chat-be/internal/model"
	"direct-chat-be/internal/repository/contract"
	"direct-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRoomRepository(db *gorm.DB) contract.ChatRoomRepository {
	return &ChatRoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRoomRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRoomRepositoryImpl) Create(ctx context.Context, room *entity.ChatRoom) error {
	m := r.mapper.ChatRoomToModel(room)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*room = *r.mapper.ChatRoomToEntity(m)
	return nil
}

func (r *ChatRoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error) {
	var m model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatRoomToEntity(&m), nil
}

func (r *ChatRoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error) {
	var models []*model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatRoom, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChatRoomToEntity(m)
	}
	return entities, nil
}

func (r *ChatRoomRepositoryImpl) TouchIfNewer(ctx context.Context, roomId uuid.UUID, preview string, at time.Time) error {
	// Monotonic compare-and-set: a touch carrying an older timestamp than the
	// stored one matches zero rows and is dropped.
	return r.db.WithContext(ctx).
		Model(&model.ChatRoom{}).
		Where("id = ? AND last_activity_at <= ?", roomId, at).
		Updates(map[string]interface{}{
			"last_message_preview": preview,
			"last_activity_at":     at,
		}).Error
}
