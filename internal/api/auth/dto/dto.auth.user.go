package authdto

// UserCreateInput đầu vào tạo người dùng (admin tạo tài khoản cho nhân viên).
type UserCreateInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
	StoreID  string `json:"storeId,omitempty" transform:"str_objectid,optional,map=storeId"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin manager associate"`
}

// UserLoginInput đầu vào đăng nhập bằng email và mật khẩu.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Hwid     string `json:"hwid" validate:"required"`
}

// UserLogoutInput đầu vào đăng xuất người dùng.
type UserLogoutInput struct {
	Hwid string `json:"hwid" validate:"required"`
}

// UserChangePasswordInput đầu vào đổi mật khẩu.
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UserChangeInfoInput đầu vào thay đổi thông tin người dùng.
type UserChangeInfoInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// UserSetRoleInput đầu vào gán vai trò và cửa hàng cho người dùng (admin).
type UserSetRoleInput struct {
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required,oneof=admin manager associate"`
	StoreID string `json:"storeId,omitempty"`
}

// BlockUserInput đầu vào khóa người dùng.
type BlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note" validate:"required"`
}

// UnBlockUserInput đầu vào mở khóa người dùng.
type UnBlockUserInput struct {
	Email string `json:"email" validate:"required,email"`
}
