package scratchoffdto

import "encoding/json"

// OptionalString phân biệt ba trạng thái của một trường JSON:
// không truyền (Present false), truyền null (Null true), và truyền giá trị.
// Dùng cho patch input khi null mang nghĩa "xóa giá trị hiện tại".
type OptionalString struct {
	Present bool
	Null    bool
	Value   string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// SlotCreateInput đầu vào tạo slot mới.
// SlotNumber 0 nghĩa là không truyền: hệ thống tự lấy số trống kế tiếp.
type SlotCreateInput struct {
	StoreID          string `json:"storeId,omitempty" transform:"str_objectid,optional,map=StoreID"`
	SlotNumber       int    `json:"slotNumber,omitempty" validate:"omitempty,min=1,max=32"`
	Label            string `json:"label,omitempty" validate:"omitempty,no_xss"`
	DefaultProductID string `json:"defaultProductId,omitempty" transform:"str_objectid_ptr,optional,map=DefaultProductID"`
}

// SlotUpdateInput đầu vào cập nhật slot (partial patch).
// Con trỏ phân biệt "không truyền" với "truyền null/zero";
// defaultProductId truyền null (hoặc chuỗi rỗng) nghĩa là xóa default product.
type SlotUpdateInput struct {
	Label            *string        `json:"label,omitempty" validate:"omitempty,no_xss"`
	IsActive         *bool          `json:"isActive,omitempty"`
	DefaultProductID OptionalString `json:"defaultProductId"`
}

// InitSlotsInput đầu vào khởi tạo đủ 32 slot cho cửa hàng.
type InitSlotsInput struct {
	StoreID string `json:"storeId,omitempty"`
}
