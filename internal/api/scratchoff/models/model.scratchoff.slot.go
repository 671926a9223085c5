// Package models - Slot thuộc domain scratchoff (scratchoff_slots).
// Mỗi slot là một vị trí vật lý trên máy bán vé số cào, chứa tối đa một pack đang hoạt động.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxSlots số slot tối đa trên một máy bán vé của một cửa hàng.
const MaxSlots = 32

// Slot vị trí máy bán vé số cào (scratchoff_slots).
// (storeId, slotNumber) là duy nhất: một cửa hàng không có hai slot cùng số.
// ActivePackID là con trỏ tới pack đang hoạt động, được cập nhật bằng
// compare-and-swap để bất biến "một slot tối đa một pack active" luôn giữ được.
type Slot struct {
	_Relationships   struct{}            `relationship:"collection:scratchoff_packs,field:slotId,message:Không thể xóa slot vì có %d pack gắn với slot này.|collection:scratchoff_snapshot_items,field:slotId,message:Không thể xóa slot vì có %d dòng snapshot gắn với slot này."`
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID          primitive.ObjectID  `json:"storeId" bson:"storeId" index:"single:1,compound:slot_store_number_unique"`
	SlotNumber       int                 `json:"slotNumber" bson:"slotNumber" index:"compound:slot_store_number_unique"`
	Label            string              `json:"label,omitempty" bson:"label,omitempty"`
	IsActive         bool                `json:"isActive" bson:"isActive" default:"true"`
	DefaultProductID *primitive.ObjectID `json:"defaultProductId,omitempty" bson:"defaultProductId,omitempty"`
	ActivePackID     *primitive.ObjectID `json:"activePackId,omitempty" bson:"activePackId,omitempty"`
	CreatedAt        int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64               `json:"updatedAt" bson:"updatedAt"`
}

// SlotPaginateResult kết quả phân trang Slot.
type SlotPaginateResult struct {
	Page      int64  `json:"page" bson:"page"`
	Limit     int64  `json:"limit" bson:"limit"`
	ItemCount int64  `json:"itemCount" bson:"itemCount"`
	Items     []Slot `json:"items" bson:"items"`
}
