package mapper

import (
	"direct-chat-be/internal/entity"
	"direct-chat-be/internal/model"
)

type ModerationMapper struct{}

func NewModerationMapper() *ModerationMapper {
	return &ModerationMapper{}
}

func (m *ModerationMapper) BlockRelationToEntity(b *model.BlockRelation) *entity.BlockRelation {
	if b == nil {
		return nil
	}
	e := entity.BlockRelation(*b)
	return &e
}

func (m *ModerationMapper) BlockRelationToModel(b *entity.BlockRelation) *model.BlockRelation {
	if b == nil {
		return nil
	}
	mdl := model.BlockRelation(*b)
	return &mdl
}

func (m *ModerationMapper) ReportToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}
	e := entity.Report(*r)
	return &e
}

func (m *ModerationMapper) ReportToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}
	mdl := model.Report(*r)
	return &mdl
}
