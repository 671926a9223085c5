package scratchoffdto

// PackActivateInput đầu vào kích hoạt pack mới trên slot.
type PackActivateInput struct {
	StoreID       string `json:"storeId,omitempty"`
	SlotID        string `json:"slotId" validate:"required"`
	ProductID     string `json:"productId" validate:"required"`
	PackCode      string `json:"packCode" validate:"required,no_xss"`
	StartTicket   string `json:"startTicket" validate:"required,ticket_number"`
	ReceiptFileID string `json:"receiptFileId" validate:"required"`
}

// PackReturnInput đầu vào trả pack về đại lý.
type PackReturnInput struct {
	PackID        string `json:"packId" validate:"required"`
	ReceiptFileID string `json:"receiptFileId" validate:"required"`
	Note          string `json:"note,omitempty" validate:"omitempty,no_xss"`
}

// PackEventCreateInput đầu vào ghi sự kiện vào lịch sử pack.
type PackEventCreateInput struct {
	PackID    string `json:"packId" validate:"required"`
	EventType string `json:"eventType" validate:"required,oneof=activated ended returned correction note return_receipt"`
	Note      string `json:"note,omitempty" validate:"omitempty,no_xss"`
	FileID    string `json:"fileId,omitempty"`
}
