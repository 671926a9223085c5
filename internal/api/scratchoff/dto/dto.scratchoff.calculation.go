package scratchoffdto

// RecalculateInput đầu vào tính lại đối soát cho một ca.
type RecalculateInput struct {
	ShiftReportID string `json:"shiftReportId" validate:"required"`
	StoreID       string `json:"storeId,omitempty"`
}
