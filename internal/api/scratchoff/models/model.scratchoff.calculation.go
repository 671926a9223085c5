// Package models - Calculation thuộc domain scratchoff (scratchoff_calculations).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalculationLine kết quả đối soát của một slot trong ca.
type CalculationLine struct {
	SlotID      primitive.ObjectID  `json:"slotId" bson:"slotId"`
	SlotNumber  int                 `json:"slotNumber" bson:"slotNumber"`
	PackID      *primitive.ObjectID `json:"packId,omitempty" bson:"packId,omitempty"`
	ProductID   *primitive.ObjectID `json:"productId,omitempty" bson:"productId,omitempty"`
	StartValue  int64               `json:"startValue" bson:"startValue"`
	EndValue    int64               `json:"endValue" bson:"endValue"`
	SoldTickets int64               `json:"soldTickets" bson:"soldTickets"`
	Revenue     float64             `json:"revenue" bson:"revenue"`
}

// Calculation kết quả đối soát bán vé của một ca (scratchoff_calculations).
// Là projection dẫn xuất từ snapshot + pack + product, keyed duy nhất theo
// (shiftReportId, storeId); Recalculate upsert lại bản ghi này, chạy hai lần
// trên cùng dữ liệu cho kết quả giống hệt nhau.
type Calculation struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ShiftReportID primitive.ObjectID `json:"shiftReportId" bson:"shiftReportId" index:"single:1,compound:calc_shift_store_unique"`
	StoreID       primitive.ObjectID `json:"storeId" bson:"storeId" index:"single:1,compound:calc_shift_store_unique"`
	Lines         []CalculationLine  `json:"lines" bson:"lines"`
	TotalSold     int64              `json:"totalSold" bson:"totalSold"`
	TotalRevenue  float64            `json:"totalRevenue" bson:"totalRevenue"`
	Flags         []string           `json:"flags" bson:"flags"`
	ComputedAt    int64              `json:"computedAt" bson:"computedAt"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}

// CalculationPaginateResult kết quả phân trang Calculation.
type CalculationPaginateResult struct {
	Page      int64         `json:"page" bson:"page"`
	Limit     int64         `json:"limit" bson:"limit"`
	ItemCount int64         `json:"itemCount" bson:"itemCount"`
	Items     []Calculation `json:"items" bson:"items"`
}
