// Package models - Snapshot và SnapshotItem thuộc domain scratchoff.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loại snapshot.
const (
	SnapshotTypeStart = "start"
	SnapshotTypeEnd   = "end"
)

// Snapshot bản ghi kiểm kê số vé tại một thời điểm (scratchoff_snapshots).
// ShiftReportID nil với baseline: baseline là snapshot đầu ca toàn cửa hàng
// do manager/owner lập, không gắn với ca làm việc cụ thể nào.
// Snapshot bất biến sau khi ghi (collection được đánh dấu append-only);
// unique (shiftReportId, snapshotType) được tạo dạng partial index riêng
// trong database.CreateScratchoffAdditionalIndexes.
type Snapshot struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	ShiftReportID  *primitive.ObjectID `json:"shiftReportId,omitempty" bson:"shiftReportId,omitempty"`
	StoreID        primitive.ObjectID  `json:"storeId" bson:"storeId" index:"single:1"`
	EmployeeUserID *primitive.ObjectID `json:"employeeUserId,omitempty" bson:"employeeUserId,omitempty"`
	SnapshotType   string              `json:"snapshotType" bson:"snapshotType"`
	IsBaseline     bool                `json:"isBaseline" bson:"isBaseline"`
	CreatedAt      int64               `json:"createdAt" bson:"createdAt"`
}

// SnapshotItem một dòng đọc số vé của một slot trong snapshot (scratchoff_snapshot_items).
// (snapshotId, slotId) là duy nhất: mỗi snapshot tối đa một dòng mỗi slot.
type SnapshotItem struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	SnapshotID  primitive.ObjectID  `json:"snapshotId" bson:"snapshotId" index:"single:1"`
	SlotID      primitive.ObjectID  `json:"slotId" bson:"slotId" index:"single:1"`
	TicketValue string              `json:"ticketValue" bson:"ticketValue"`
	PackID      *primitive.ObjectID `json:"packId,omitempty" bson:"packId,omitempty"`
	CreatedAt   int64               `json:"createdAt" bson:"createdAt"`
}

// SnapshotWithItems snapshot kèm các dòng của nó, dùng cho response tạo snapshot.
type SnapshotWithItems struct {
	Snapshot Snapshot       `json:"snapshot"`
	Items    []SnapshotItem `json:"items"`
}
