// Package models - PackEvent thuộc domain scratchoff (scratchoff_pack_events).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại sự kiện pack. correction/note/ended chỉ dành cho manager trở lên,
// return_receipt là sự kiện duy nhất nhân viên bán hàng được tự ghi.
const (
	PackEventActivated     = "activated"
	PackEventEnded         = "ended"
	PackEventReturned      = "returned"
	PackEventCorrection    = "correction"
	PackEventNote          = "note"
	PackEventReturnReceipt = "return_receipt"
)

// PackEvent một dòng lịch sử vòng đời pack (scratchoff_pack_events).
// Collection này append-only: sự kiện đã ghi không bao giờ sửa hay xóa,
// mọi đính chính là một sự kiện correction mới.
type PackEvent struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PackID          primitive.ObjectID `json:"packId" bson:"packId" index:"single:1"`
	EventType       string             `json:"eventType" bson:"eventType" index:"single:1"`
	CreatedByUserID primitive.ObjectID `json:"createdByUserId,omitempty" bson:"createdByUserId,omitempty"`
	Note            string             `json:"note,omitempty" bson:"note,omitempty"`
	FileID          string             `json:"fileId,omitempty" bson:"fileId,omitempty"`
	CreatedAt       int64              `json:"createdAt" bson:"createdAt" index:"single:-1"`
}

// IsValidPackEventType kiểm tra eventType có hợp lệ không.
func IsValidPackEventType(eventType string) bool {
	switch eventType {
	case PackEventActivated, PackEventEnded, PackEventReturned,
		PackEventCorrection, PackEventNote, PackEventReturnReceipt:
		return true
	}
	return false
}
