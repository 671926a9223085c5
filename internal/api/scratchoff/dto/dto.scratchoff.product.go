package scratchoffdto

// ProductUpsertInput đầu vào tạo/cập nhật sản phẩm vé số cào.
// ID rỗng thì tạo mới, có ID thì cập nhật.
type ProductUpsertInput struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty" validate:"omitempty,no_xss"`
	Price    *float64 `json:"price" validate:"required"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// ProductCreateInput đầu vào tạo sản phẩm qua CRUD surface.
type ProductCreateInput struct {
	Name     string  `json:"name" validate:"required,no_xss"`
	Price    float64 `json:"price" validate:"min=0"`
	IsActive bool    `json:"isActive,omitempty"`
}

// ProductUpdateInput đầu vào cập nhật sản phẩm qua CRUD surface.
type ProductUpdateInput struct {
	Name     string  `json:"name,omitempty" validate:"omitempty,no_xss"`
	Price    float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	IsActive bool    `json:"isActive,omitempty"`
}
