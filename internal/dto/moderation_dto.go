package dto

import "github.com/google/uuid"

type BlockUserRequest struct {
	BlockedUserId uuid.UUID `json:"blockedUserId" validate:"required"`
}

type ReportItemRequest struct {
	ItemType string `json:"itemType" validate:"required,oneof=message chat"`
	ItemId   string `json:"itemId" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

type ReportItemResponse struct {
	ReportId uuid.UUID `json:"reportId"`
}
