package scratchoffdto

// SnapshotItemInput một dòng đọc số vé của một slot.
// TicketValue được trim, dòng có giá trị rỗng bị bỏ qua.
type SnapshotItemInput struct {
	SlotID      string `json:"slotId" validate:"required"`
	TicketValue string `json:"ticketValue"`
}

// BaselineSnapshotCreateInput đầu vào tạo baseline cho cửa hàng.
// Baseline là snapshot đầu ca toàn cửa hàng, không gắn với ca cụ thể.
type BaselineSnapshotCreateInput struct {
	StoreID string              `json:"storeId,omitempty"`
	Items   []SnapshotItemInput `json:"items" validate:"required,min=1,dive"`
}

// ShiftSnapshotCreateInput đầu vào tạo snapshot đầu/kết ca.
type ShiftSnapshotCreateInput struct {
	ShiftReportID string              `json:"shiftReportId" validate:"required"`
	StoreID       string              `json:"storeId,omitempty"`
	SnapshotType  string              `json:"snapshotType" validate:"required,oneof=start end"`
	Items         []SnapshotItemInput `json:"items" validate:"required,min=1,dive"`
}
